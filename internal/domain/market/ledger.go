package market

import (
	"fmt"
	"math"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// Clamp bounds for the per-good caches
const (
	MinSupply  = 0.01
	MaxSupply  = 5000.0
	MinDemand  = 0.01
	MaxDemand  = 10000.0
	MinVP      = 0.01
	MaxVP      = 10000.0
	MaxFinalVP = 5000.0

	// HighestProjectedValue caps any projected demand before flattening
	HighestProjectedValue = 20000.0
)

const (
	overshootScale      = 0.81
	deflateStep         = 0.9
	inflateStep         = 1.1
	deflateFloor        = 10.0
	inflateCeiling      = 1000.0
	interMarketWeight   = 0.1
	marketAdjustDivisor = 20.0
	tradeDistanceScale  = 1000.0
)

// demandDetail is the per-good demand breakdown of the last refresh
type demandDetail struct {
	projected float64
	trade     float64
	repair    float64
	refreshed bool
}

// Ledger is one settlement's goods market: value points, demand, supply,
// deflation bookkeeping and the buy/sell shortlists.
//
// A Ledger is not safe for concurrent use. The simulation drives it from a
// single goroutine and serializes outside readers.
type Ledger struct {
	settlementID string
	env          *Environment

	values    map[int]float64
	demand    map[int]float64
	supply    map[int]float64
	deflation map[int]int
	trade     map[int]float64
	detail    map[int]*demandDetail

	factors        map[CommerceType]float64
	repairMod      float64
	maintenanceMod float64
	evaSuitMod     float64
	essentials     map[int]EssentialLimit
	reviewed       map[int]bool

	initialized bool

	buyList       map[int]ShoppingItem
	sellList      map[int]ShoppingItem
	listsRefresh  shared.SimTime
	tradeExcluded map[int]bool

	listeners        []subscription
	nextSubscription int
}

// NewLedger creates a ledger seeded for every good in the catalog:
// value 1, trade demand 0, deflation index 0 and the category defaults
// for demand and supply.
func NewLedger(settlementID string, env *Environment) (*Ledger, error) {
	if settlementID == "" {
		return nil, shared.NewValidationError("settlementID", "cannot be empty")
	}
	if env == nil || env.Catalog == nil || env.Clock == nil {
		return nil, shared.NewConfigurationError("market", "environment needs a catalog and a clock")
	}

	l := &Ledger{
		settlementID:   settlementID,
		env:            env,
		values:         make(map[int]float64),
		demand:         make(map[int]float64),
		supply:         make(map[int]float64),
		deflation:      make(map[int]int),
		trade:          make(map[int]float64),
		detail:         make(map[int]*demandDetail),
		factors:        make(map[CommerceType]float64),
		repairMod:      BaseRepairPart,
		maintenanceMod: BaseMaintPart,
		evaSuitMod:     BaseEVASuit,
		essentials:     make(map[int]EssentialLimit),
		reviewed:       make(map[int]bool),
		buyList:        map[int]ShoppingItem{},
		sellList:       map[int]ShoppingItem{},
		tradeExcluded:  env.Catalog.TradeExcluded(),
	}

	for _, g := range env.Catalog.All() {
		b := behaviorFor(g)
		id := g.ID()
		l.values[id] = 1
		l.trade[id] = 0
		l.deflation[id] = 0
		l.demand[id] = clamp(b.defaultDemand, MinDemand, MaxDemand)
		l.supply[id] = clamp(b.defaultSupply, MinSupply, MaxSupply)
		l.detail[id] = &demandDetail{}
	}

	return l, nil
}

func (l *Ledger) SettlementID() string {
	return l.settlementID
}

// Catalog returns the catalog the ledger tracks
func (l *Ledger) Catalog() *goods.Catalog {
	return l.env.Catalog
}

// UpdateGoodValues runs one valuation tick over every good. From the second
// tick on, each good's shared inter-market value also drifts toward its band.
func (l *Ledger) UpdateGoodValues(site Site) {
	l.reviewed = make(map[int]bool)

	model := l.env.Catalog.CostModel()
	for _, g := range l.env.Catalog.All() {
		l.DetermineGoodValue(site, g)
		if l.initialized {
			model.AdjustInterMarketValue(g)
		}
	}
	l.initialized = true
}

// DetermineGoodValue refreshes a good's supply and demand and recomputes its value point
func (l *Ledger) DetermineGoodValue(site Site, g *goods.Good) float64 {
	behaviorFor(g).refresh(l, site, g)

	id := g.ID()
	value := l.demand[id] / (1 + l.supply[id])

	if value > MaxVP {
		value = l.updateDeflationMap(g, value, true)
	} else if value < MinVP {
		l.updateDeflationMap(g, value, false)
	}

	value = l.checkDeflation(id, value)

	adjustment := l.adjustMarketValue(g, value) / marketAdjustDivisor
	if value+adjustment > 0 {
		value += adjustment
	}

	old := l.values[id]
	if old != value {
		l.values[id] = value
		l.publish(Event{
			Type:         EventValueChanged,
			SettlementID: l.settlementID,
			GoodID:       id,
			OldValue:     old,
			NewValue:     value,
			At:           l.env.Clock.Now(),
		})
	}
	return value
}

// updateDeflationMap bumps the deflation index of every other good when a
// value overshoots: +2 within the same category, +1 across categories.
// The overshooting value is scaled down at once. An undershoot leaves
// every index and the value untouched.
func (l *Ledger) updateDeflationMap(cause *goods.Good, value float64, exceed bool) float64 {
	if !exceed {
		return value
	}

	for _, g := range l.env.Catalog.All() {
		if g.ID() == cause.ID() {
			continue
		}
		if g.Category() == cause.Category() {
			l.deflation[g.ID()] += 2
		} else {
			l.deflation[g.ID()]++
		}
	}
	return value * overshootScale
}

// checkDeflation consumes a good's deflation index. A positive index deflates
// by 10% per step without dropping to 10 or below; a negative index inflates
// by 10% per step without reaching 1000. The index is then reset.
func (l *Ledger) checkDeflation(id int, value float64) float64 {
	index := l.deflation[id]

	for i := 0; i < index; i++ {
		if next := value * deflateStep; next > deflateFloor {
			value = next
		}
	}
	for i := 0; i < -index; i++ {
		if next := value * inflateStep; next < inflateCeiling {
			value = next
		}
	}

	l.deflation[id] = 0
	return value
}

// adjustMarketValue blends the local value into the good's shared
// inter-market value and returns how far the shared value moved.
// The first call for a good only seeds the shared value.
func (l *Ledger) adjustMarketValue(g *goods.Good, value float64) float64 {
	current, ok := g.InterMarketValue()
	if !ok {
		g.SetInterMarketValue(clamp(value, MinVP, MaxFinalVP))
		return 0
	}

	future := clamp((1-interMarketWeight)*current+interMarketWeight*value, MinVP, MaxFinalVP)
	g.SetInterMarketValue(future)
	return future - current
}

// DetermineTradeDemand finds the best distance-discounted value point of a
// good among every other settlement and caches it.
func (l *Ledger) DetermineTradeDemand(site Site, g *goods.Good) float64 {
	best := 0.0
	if l.env.Peers != nil {
		here := site.Coordinates()
		for _, peer := range l.env.Peers.Peers(l.settlementID) {
			market := peer.Market()
			if market == nil {
				continue
			}
			distance := here.DistanceTo(peer.Coordinates())
			tradeValue := market.ValuePoint(g.ID()) / (1 + distance/tradeDistanceScale)
			if tradeValue > best {
				best = tradeValue
			}
		}
	}
	l.trade[g.ID()] = best
	return best
}

// TradeDemand returns the cached trade demand of a good
func (l *Ledger) TradeDemand(id int) float64 {
	return l.trade[id]
}

// ValuePoint returns the current value point of a good, 0 if untracked
func (l *Ledger) ValuePoint(id int) float64 {
	return l.values[id]
}

// LookupValuePoint returns the value point, or an error for an untracked good
func (l *Ledger) LookupValuePoint(id int) (float64, error) {
	v, ok := l.values[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownGood, id)
	}
	return v, nil
}

// Demand returns the cached demand of a good
func (l *Ledger) Demand(id int) float64 {
	return l.demand[id]
}

// Supply returns the cached supply of a good
func (l *Ledger) Supply(id int) float64 {
	return l.supply[id]
}

// DeflationIndex returns a good's pending deflation index
func (l *Ledger) DeflationIndex(id int) int {
	return l.deflation[id]
}

// SetDemand stores a demand value clamped to [MinDemand, MaxDemand]
func (l *Ledger) SetDemand(id int, v float64) {
	l.demand[id] = clamp(v, MinDemand, MaxDemand)
}

// SetSupply stores a supply value clamped to [MinSupply, MaxSupply]
func (l *Ledger) SetSupply(id int, v float64) {
	l.supply[id] = clamp(v, MinSupply, MaxSupply)
}

// GoodValueWithSupply prices a good at a hypothetical supply level using its
// current demand. Supply below MinSupply, zero included, counts as MinSupply.
func (l *Ledger) GoodValueWithSupply(id int, supply float64) float64 {
	if supply < MinSupply {
		supply = MinSupply
	}
	return l.demand[id] / supply
}

// Price converts a good's value point into a price at this settlement
func (l *Ledger) Price(site Holdings, g *goods.Good) float64 {
	return goods.Price(g, l.values[g.ID()], heldForPrice(site, g))
}

// SetCommerceFactor records a commerce factor after applying its fixed weight
func (l *Ledger) SetCommerceFactor(t CommerceType, v float64) {
	if w, ok := commerceWeights[t]; ok {
		v *= w
	}
	l.factors[t] = v
}

// CommerceFactor returns a commerce factor, 1 when unset
func (l *Ledger) CommerceFactor(t CommerceType) float64 {
	if v, ok := l.factors[t]; ok {
		return v
	}
	return 1
}

// ResetCommerceFactors clears every commerce factor
func (l *Ledger) ResetCommerceFactors() {
	l.factors = make(map[CommerceType]float64)
}

func (l *Ledger) SetRepairPriority(level int) {
	l.repairMod = computeModifier(BaseRepairPart, level)
}

func (l *Ledger) SetMaintenancePriority(level int) {
	l.maintenanceMod = computeModifier(BaseMaintPart, level)
}

func (l *Ledger) SetEVASuitPriority(level int) {
	l.evaSuitMod = computeModifier(BaseEVASuit, level)
}

func (l *Ledger) RepairLevel() int {
	return computeLevel(l.repairMod / BaseRepairPart)
}

func (l *Ledger) MaintenanceLevel() int {
	return computeLevel(l.maintenanceMod / BaseMaintPart)
}

func (l *Ledger) EVASuitLevel() int {
	return computeLevel(l.evaSuitMod / BaseEVASuit)
}

// EVASuitModifier returns the raw EVA suit priority modifier
func (l *Ledger) EVASuitModifier() float64 {
	return l.evaSuitMod
}

// Initialized reports whether at least one valuation tick has run
func (l *Ledger) Initialized() bool {
	return l.initialized
}

// ProjectedDemand returns the projected demand of the last refresh
func (l *Ledger) ProjectedDemand(id int) float64 {
	if d, ok := l.detail[id]; ok {
		return d.projected
	}
	return 0
}

// RepairDemand returns the repair demand of the last refresh (parts only)
func (l *Ledger) RepairDemand(id int) float64 {
	if d, ok := l.detail[id]; ok {
		return d.repair
	}
	return 0
}

// State captures the ledger for persistence
func (l *Ledger) State() *LedgerState {
	state := &LedgerState{
		SettlementID:   l.settlementID,
		Values:         copyFloats(l.values),
		Demand:         copyFloats(l.demand),
		Supply:         copyFloats(l.supply),
		Deflation:      make(map[int]int, len(l.deflation)),
		TradeCache:     copyFloats(l.trade),
		Factors:        make(map[CommerceType]float64, len(l.factors)),
		RepairMod:      l.repairMod,
		MaintenanceMod: l.maintenanceMod,
		EVASuitMod:     l.evaSuitMod,
		Initialized:    l.initialized,
	}
	for k, v := range l.deflation {
		state.Deflation[k] = v
	}
	for k, v := range l.factors {
		state.Factors[k] = v
	}
	return state
}

// Restore overwrites the ledger with saved state. Goods missing from the
// state keep their current entries; unknown goods are ignored.
func (l *Ledger) Restore(state *LedgerState) error {
	if state.SettlementID != l.settlementID {
		return fmt.Errorf("%w: %s", ErrSettlementMismatch, state.SettlementID)
	}

	restore := func(dst map[int]float64, src map[int]float64) {
		for id, v := range src {
			if _, tracked := dst[id]; tracked {
				dst[id] = v
			}
		}
	}
	restore(l.values, state.Values)
	restore(l.demand, state.Demand)
	restore(l.supply, state.Supply)
	restore(l.trade, state.TradeCache)
	for id, v := range state.Deflation {
		if _, tracked := l.deflation[id]; tracked {
			l.deflation[id] = v
		}
	}

	l.factors = make(map[CommerceType]float64, len(state.Factors))
	for k, v := range state.Factors {
		l.factors[k] = v
	}
	if state.RepairMod > 0 {
		l.repairMod = state.RepairMod
	}
	if state.MaintenanceMod > 0 {
		l.maintenanceMod = state.MaintenanceMod
	}
	if state.EVASuitMod > 0 {
		l.evaSuitMod = state.EVASuitMod
	}
	l.initialized = state.Initialized
	return nil
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

func copyFloats(src map[int]float64) map[int]float64 {
	dst := make(map[int]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
