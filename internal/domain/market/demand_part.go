package market

import (
	"math"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

const (
	evaPartsValue         = 20.0
	attachmentPartsDemand = 20.0
	kitchenPartDemand     = 1.5
	vehiclePartDemand     = 0.4
	fuelCellDemand        = 1.0
	fuelCellStackDemand   = 8.0
	partsMaintenanceValue = 1000.0
)

var attachmentParts = map[string]bool{
	"backhoe":         true,
	"bulldozer blade": true,
	"crane boom":      true,
	"drilling rig":    true,
	"pneumatic drill": true,
	"soil compactor":  true,
}

// refreshPart recomputes the demand and supply of a part
func refreshPart(l *Ledger, site Site, g *goods.Good) {
	id := g.ID()
	prev := l.demand[id]
	average := prev

	projected := math.Min(HighestProjectedValue,
		l.partManufacturingDemand(site, g)+
			l.partFoodProductionDemand(site, g)+
			l.evaPartDemand(g, prev)+
			attachmentDemand(g, prev)+
			kitchenDemand(g, prev)+
			l.vehiclePartDemand(g)+
			fuelCellPartDemand(g)+
			maintenancePartDemand(site, g))

	flattened := projected * partFlatten(g)
	trade := l.DetermineTradeDemand(site, g)
	repair := float64(l.MaintenanceLevel()+l.RepairLevel()) / 2 * prev

	d := l.detail[id]
	d.projected = projected
	d.trade = trade
	d.repair = repair

	l.blend(id,
		func(float64) float64 {
			return 0.1*repair + 0.4*average + 0.4*flattened + 0.1*trade
		},
		func(prev float64) float64 {
			return 0.97*prev + 0.005*repair + 0.005*average + 0.01*flattened + 0.01*trade
		})

	l.SetSupply(id, squareRootSupply(float64(site.ItemCount(id))))
}

func (l *Ledger) partManufacturingDemand(site Site, g *goods.Good) float64 {
	tech := site.TechLevel(goods.ProcessManufacturing)
	if tech < 0 {
		return 0
	}

	base := 0.0
	for _, p := range l.env.Catalog.Processes().UpToTech(goods.ProcessManufacturing, tech) {
		in, ok := p.InputNamed(g.Name())
		if !ok || in.Kind != goods.ItemPart {
			continue
		}
		value := l.processInputValue(site, p, true)
		if cType, ok := partCommerceType(site.Objective(), g); ok {
			value *= l.CommerceFactor(cType)
		}
		value *= manufacturingInput
		if value > 0 {
			base += value * (in.Amount / p.TotalInputAmount()) * float64(1+tech)
		}
	}
	return math.Min(MaxDemand, base/100)
}

func (l *Ledger) partFoodProductionDemand(site Site, g *goods.Good) float64 {
	tech := site.TechLevel(goods.ProcessFoodProduction)
	if tech < 0 {
		return 0
	}

	demand := 0.0
	for _, p := range l.env.Catalog.Processes().UpToTech(goods.ProcessFoodProduction, tech) {
		in, ok := p.InputNamed(g.Name())
		if !ok || in.Kind != goods.ItemPart {
			continue
		}
		value := l.processInputValue(site, p, true) *
			l.CommerceFactor(CommerceTrade) * l.CommerceFactor(CommerceCrop) * foodProductionInput
		if value > 0 {
			demand += value * (in.Amount / p.TotalInputAmount())
		}
	}
	return demand
}

func (l *Ledger) evaPartDemand(g *goods.Good, prev float64) float64 {
	if g.Type() != goods.GoodTypeEVA {
		return 0
	}
	return l.evaSuitMod * evaPartsValue * prev / 3
}

func attachmentDemand(g *goods.Good, prev float64) float64 {
	if g.Type() != goods.GoodTypeAttachment && !attachmentParts[nameKey(g)] {
		return 0
	}
	return attachmentPartsDemand * (1 + prev/3)
}

func kitchenDemand(g *goods.Good, prev float64) float64 {
	if g.Type() != goods.GoodTypeKitchen {
		return 0
	}
	return prev * kitchenPartDemand
}

func (l *Ledger) vehiclePartDemand(g *goods.Good) float64 {
	if g.Type() != goods.GoodTypeVehiclePart {
		return 0
	}
	return (1 + l.CommerceFactor(CommerceTourism)/30) * vehiclePartDemand
}

func fuelCellPartDemand(g *goods.Good) float64 {
	switch {
	case g.HasNameFragment("fuel cell"):
		return fuelCellDemand
	case g.HasNameFragment("stack"):
		return fuelCellStackDemand
	}
	return 0
}

func maintenancePartDemand(site Site, g *goods.Good) float64 {
	if n := site.MaintenanceDemand(g.ID()); n > 0 {
		return float64(n) * partsMaintenanceValue
	}
	return 0
}

// InjectPartDemand raises a part's demand at once when needed more than the
// settlement holds, without waiting for the next valuation tick. The new
// demand is the unit-weighted mean of the current demand over held units and
// the maintenance demand over needed units, never below current + added.
// It reports whether the demand changed.
func (l *Ledger) InjectPartDemand(site Site, g *goods.Good, needed int) bool {
	if g.Category() != goods.CategoryItemResource || needed <= 0 {
		return false
	}

	id := g.ID()
	prev := l.demand[id]
	held := site.ItemCount(id)

	added := maintenancePartDemand(site, g)
	prevTotal := prev * float64(held)
	addedTotal := added * float64(needed)
	if prevTotal-addedTotal >= 0 {
		return false
	}

	final := (prevTotal + addedTotal) / float64(held+needed)
	if final < prev {
		final = prev + added
	}
	l.SetDemand(id, final)
	l.DetermineGoodValue(site, g)
	return true
}
