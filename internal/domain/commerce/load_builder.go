package commerce

import (
	"math"
	"sort"
	"strings"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
)

// loadState is the running state of one greedy load construction
type loadState struct {
	buyer       Settlement
	seller      Settlement
	vehicle     Vehicle
	load        Load
	capacity    float64
	hasVehicle  bool
	repairParts map[int]bool
	skip        map[int]bool
	failures    []Evaluation
}

func (st *loadState) fail(ev Evaluation) {
	st.skip[ev.GoodID] = true
	st.failures = append(st.failures, ev)
}

// DetermineLoad greedily fills the vehicle with the goods seller can sell
// to buyer at the highest marginal gain, until no eligible good adds value
// under maxBuyValue or the cargo space runs out.
//
// The usable cargo is the vehicle's capacity minus MissionBaseMass, never
// negative. The previous pick is retried first so that single goods are
// batched instead of alternating. A good whose evaluation fails is dropped
// and reported on the result; the rest of the load is still built.
func (f *Finder) DetermineLoad(buyer, seller Settlement, vehicle Vehicle, maxBuyValue float64) LoadResult {
	st := &loadState{
		buyer:       buyer,
		seller:      seller,
		vehicle:     vehicle,
		load:        Load{},
		capacity:    math.Max(0, vehicle.Spec().CargoCapacity-f.cfg.MissionBaseMass),
		repairParts: make(map[int]bool),
		skip:        make(map[int]bool),
	}
	for _, id := range vehicle.RepairParts() {
		st.repairParts[id] = true
	}

	buyerValue := 0.0
	var previous *goods.Good
	for {
		remaining := maxBuyValue - buyerValue
		g := f.findBestGood(st, previous, remaining)
		if g == nil {
			break
		}
		added, err := f.addGood(st, g, remaining)
		if err != nil {
			st.fail(failed(g.ID(), err))
			previous = nil
			continue
		}
		buyerValue += added
		previous = g
	}

	return LoadResult{Load: st.load, Failures: st.failures}
}

// findBestGood picks the good with the highest positive trade value below
// maxBuyValue from the buyer's buy list, retrying the previous pick first
func (f *Finder) findBestGood(st *loadState, previous *goods.Good, maxBuyValue float64) *goods.Good {
	if previous != nil && !st.skip[previous.ID()] {
		ev := f.evaluate(st, previous)
		switch {
		case ev.Verdict == Failed:
			st.fail(ev)
		case ev.Verdict == Eligible && ev.Value > 0 && ev.Value < maxBuyValue:
			return previous
		}
	}

	buyList := st.buyer.Market().BuyList()
	ids := make([]int, 0, len(buyList))
	for id := range buyList {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var result *goods.Good
	best := 0.0
	for _, id := range ids {
		if st.skip[id] {
			continue
		}
		g, err := f.catalog.Lookup(id)
		if err != nil {
			st.fail(failed(id, err))
			continue
		}
		ev := f.evaluate(st, g)
		if ev.Verdict == Failed {
			st.fail(ev)
			continue
		}
		if ev.Verdict == Eligible && ev.Value > best && ev.Value < maxBuyValue {
			result = g
			best = ev.Value
		}
	}
	return result
}

// evaluate weighs one more trade unit of g: the buyer's marginal value
// minus the seller's, provided the unit fits, the seller keeps its
// reserves, and the good is not the mission vehicle.
func (f *Finder) evaluate(st *loadState, g *goods.Good) Evaluation {
	id := g.ID()
	if !carried(g.Category()) {
		return ineligible(id, "not carried on trade missions")
	}
	traded := float64(st.load[id])

	multiplier := 1.0
	var container *goods.Good
	if g.Category() == goods.CategoryAmountResource {
		c, err := f.catalog.ContainerForResource(g)
		if err != nil {
			return failed(id, err)
		}
		container = c
		multiplier = c.Capacity()
	}

	sellingInventory := inventoryOf(g, st.seller)
	sellingSupply := math.Max(0, sellingInventory-traded-1)
	sellingValue := st.seller.Market().GoodValueWithSupply(id, sellingSupply) * multiplier

	buyingInventory := inventoryOf(g, st.buyer)
	buyingSupply := math.Max(0, buyingInventory+traded+1)
	buyingValue := st.buyer.Market().GoodValueWithSupply(id, buyingSupply) * multiplier

	switch {
	case sellingInventory <= traded:
		return ineligible(id, "seller has none left")
	case buyingValue <= 0:
		return ineligible(id, "no value to buyer")
	case buyingValue <= sellingValue:
		return ineligible(id, "not profitable")
	case !f.hasCapacity(st, g, container):
		return ineligible(id, "no cargo space")
	}

	remaining := sellingInventory - traded
	switch g.Category() {
	case goods.CategoryAmountResource:
		if !f.containerAvailable(st, container) {
			return ineligible(id, "no empty "+container.Name())
		}
		if remaining < multiplier {
			return ineligible(id, "less than a container left")
		}
		if g.IsLifeSupport() && remaining-multiplier < f.cfg.MinLifeSupport {
			return ineligible(id, "life support reserve")
		}
	case goods.CategoryItemResource:
		if st.repairParts[id] && remaining-1 < f.cfg.MinRepairParts {
			return ineligible(id, "repair part reserve")
		}
	case goods.CategoryEquipment:
		if remaining <= float64(st.vehicle.Spec().CrewCapacity+f.cfg.EVASuitMargin) {
			return ineligible(id, "eva suit reserve")
		}
	case goods.CategoryContainer:
		if remaining <= f.cfg.MinEquipment {
			return ineligible(id, "equipment reserve")
		}
	case goods.CategoryVehicle:
		if strings.EqualFold(g.Name(), st.vehicle.Spec().Name) && sellingInventory == 1 {
			return ineligible(id, "mission vehicle")
		}
	}

	return eligible(id, buyingValue-sellingValue)
}

// hasCapacity reports whether one more trade unit of g fits in the cargo
func (f *Finder) hasCapacity(st *loadState, g *goods.Good, container *goods.Good) bool {
	// Bins and robots never reach here; see carried.
	switch g.Category() {
	case goods.CategoryAmountResource:
		return st.capacity >= container.Capacity()+container.MassPerItem()
	case goods.CategoryItemResource, goods.CategoryEquipment, goods.CategoryContainer:
		return st.capacity >= g.MassPerItem()
	case goods.CategoryVehicle:
		return !st.hasVehicle
	}
	return false
}

// containerAvailable reports whether the seller has an empty container left
// beyond those already in the load
func (f *Finder) containerAvailable(st *loadState, container *goods.Good) bool {
	stored := st.seller.ItemCount(container.ID()) - st.seller.InUseCount(container.ID())
	return stored > st.load[container.ID()]
}

// addGood puts one trade unit of g into the load (a container-full for
// amount resources, a batch for parts) and returns its value to the buyer
func (f *Finder) addGood(st *loadState, g *goods.Good, maxBuyValue float64) (float64, error) {
	id := g.ID()
	buyerMarket := st.buyer.Market()
	value := 0.0
	number := 1

	switch g.Category() {
	case goods.CategoryAmountResource:
		container, err := f.catalog.ContainerForResource(g)
		if err != nil {
			return 0, err
		}
		cid := container.ID()
		held := st.load[cid]
		supply := market.NumberHeld(st.buyer, container)
		value += buyerMarket.GoodValueWithSupply(cid, supply+float64(held))
		st.load[cid] = held + 1
		st.capacity -= container.MassPerItem()

		number = int(container.Capacity())
		st.capacity -= float64(number)
	case goods.CategoryItemResource:
		number = f.partsToTrade(st, g, maxBuyValue)
		st.capacity -= g.MassPerItem() * float64(number)
	case goods.CategoryVehicle:
		st.hasVehicle = true
	default:
		st.capacity -= g.MassPerItem()
	}

	current := st.load[id]
	supply := market.NumberHeld(st.buyer, g)
	value += buyerMarket.GoodValueWithSupply(id, supply+float64(current+number)) * float64(number)
	st.load[id] = current + number
	return value, nil
}

// partsToTrade sizes a batch of a part unit by unit while the buyer still
// values the next unit above the seller, the seller has stock beyond any
// repair reserve, the cargo has room and the batch stays under maxBuyValue
func (f *Finder) partsToTrade(st *loadState, g *goods.Good, maxBuyValue float64) int {
	id := g.ID()
	sellingInventory := st.seller.ItemCount(id)
	buyingInventory := st.buyer.ItemCount(id)
	traded := st.load[id]
	limit := int(st.capacity / g.MassPerItem())

	reserve := 0
	if st.repairParts[id] {
		reserve = int(math.Ceil(f.cfg.MinRepairParts))
	}

	result := 0
	total := traded
	totalValue := 0.0
	for {
		sellingValue := st.seller.Market().GoodValueWithSupply(id, float64(sellingInventory-total-1))
		buyingValue := st.buyer.Market().GoodValueWithSupply(id, float64(buyingInventory+total+1))

		if buyingValue <= sellingValue ||
			total+1 > sellingInventory-reserve ||
			total+1 > limit ||
			totalValue+buyingValue >= maxBuyValue {
			break
		}
		result++
		total = traded + result
		totalValue += buyingValue
	}

	if result == 0 {
		result = 1
	}
	return result
}

// inventoryOf returns how much of g a settlement can part with: kg stored,
// parts held, empty equipment and idle vehicles
func inventoryOf(g *goods.Good, s Settlement) float64 {
	id := g.ID()
	// Bins and robots count as none: neither is loaded as cargo.
	switch g.Category() {
	case goods.CategoryAmountResource:
		return s.AmountStored(id)
	case goods.CategoryItemResource:
		return float64(s.ItemCount(id))
	case goods.CategoryEquipment, goods.CategoryContainer:
		return float64(s.ItemCount(id) - s.InUseCount(id))
	case goods.CategoryVehicle:
		_, idle := s.VehicleCount(id)
		return float64(idle)
	}
	return 0
}

// carried reports whether goods of category c can ride in a trade load.
// Bins are settlement storage fixtures and robots travel under their own
// power, so neither is ever loaded.
func carried(c goods.Category) bool {
	switch c {
	case goods.CategoryBin, goods.CategoryRobot:
		return false
	}
	return true
}
