package market

import (
	"math"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

// behavior is the per-category half of a good: its seed values, how a
// valuation tick refreshes its demand and supply, and how many units a
// settlement holds.
type behavior struct {
	defaultDemand float64
	defaultSupply float64
	refresh       func(l *Ledger, site Site, g *goods.Good)
	number        func(h Holdings, g *goods.Good) float64
}

var behaviors = map[goods.Category]behavior{
	goods.CategoryAmountResource: {
		defaultDemand: 0,
		defaultSupply: 0,
		refresh:       refreshResource,
		number:        storedAmount,
	},
	goods.CategoryItemResource: {
		defaultDemand: 30,
		defaultSupply: 1,
		refresh:       refreshPart,
		number:        itemCount,
	},
	goods.CategoryEquipment: {
		defaultDemand: 1,
		defaultSupply: 1,
		refresh:       refreshEVASuit,
		number:        itemCount,
	},
	goods.CategoryContainer: {
		defaultDemand: 1,
		defaultSupply: 1,
		refresh:       refreshContainer,
		number:        itemCount,
	},
	goods.CategoryBin: {
		defaultDemand: 1,
		defaultSupply: 1,
		refresh:       refreshBin,
		number:        itemCount,
	},
	goods.CategoryVehicle: {
		defaultDemand: 1,
		defaultSupply: 1,
		refresh:       refreshVehicle,
		number:        vehicleCount,
	},
	goods.CategoryRobot: {
		defaultDemand: 1,
		defaultSupply: 1,
		refresh:       refreshRobot,
		number:        itemCount,
	},
}

// behaviorFor returns the behavior of g's category. The category set is
// closed, so a miss means an unvalidated good; it gets inert behavior.
func behaviorFor(g *goods.Good) behavior {
	if b, ok := behaviors[g.Category()]; ok {
		return b
	}
	return behavior{
		defaultDemand: MinDemand,
		defaultSupply: MinSupply,
		refresh:       func(*Ledger, Site, *goods.Good) {},
		number:        func(Holdings, *goods.Good) float64 { return 0 },
	}
}

// NumberHeld returns how many units of g a settlement holds: kg for amount
// resources, total count for vehicles and item count otherwise.
func NumberHeld(h Holdings, g *goods.Good) float64 {
	return behaviorFor(g).number(h, g)
}

func heldForPrice(h Holdings, g *goods.Good) float64 {
	return NumberHeld(h, g)
}

func storedAmount(h Holdings, g *goods.Good) float64 {
	return h.AmountStored(g.ID())
}

func itemCount(h Holdings, g *goods.Good) float64 {
	return float64(h.ItemCount(g.ID()))
}

func vehicleCount(h Holdings, g *goods.Good) float64 {
	total, _ := h.VehicleCount(g.ID())
	return float64(total)
}

// blend mixes a first-refresh estimate or a steady-state update into the stored demand
func (l *Ledger) blend(id int, first, steady func(prev float64) float64) float64 {
	d := l.detail[id]
	prev := l.demand[id]
	var total float64
	if d.refreshed {
		total = steady(prev)
	} else {
		total = first(prev)
	}
	d.refreshed = true
	l.SetDemand(id, total)
	return l.demand[id]
}

func squareRootSupply(n float64) float64 {
	return math.Sqrt(1 + math.Max(0, n))
}
