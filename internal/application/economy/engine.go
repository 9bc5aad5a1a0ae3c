package economy

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/settlement"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

const (
	taskValuation  = "valuation"
	taskShortlists = "shortlists"
)

// Engine runs the economy of one simulation: it owns the clock, the
// scheduler, every settlement's ledger, the credit manager and the deal finder.
//
// Every public method takes the engine lock, so the domain objects underneath
// only ever see one goroutine at a time. Listeners registered through the
// Subscribe methods run under that lock and must not call back into the engine.
type Engine struct {
	mu sync.Mutex

	catalog   *goods.Catalog
	clock     *shared.MasterClock
	scheduler *shared.TickScheduler
	registry  *settlement.Registry
	missions  *settlement.MissionBoard
	credit    *credit.Manager
	finder    *commerce.Finder
	cfg       Config

	history market.ValueHistoryRepository
	pending []*market.ValueRecord

	// per-Advance counters
	valuations int
	refreshes  int
	changes    int
	warnings   []string
}

// NewEngine creates the settlements of a run from their profiles and wires
// them to a clock starting at start
func NewEngine(catalog *goods.Catalog, start shared.SimTime, profiles []settlement.Profile, cfg Config) (*Engine, error) {
	if catalog == nil {
		return nil, shared.NewConfigurationError("economy", "engine needs a catalog")
	}
	if cfg.ValuationInterval <= 0 || cfg.ListValidity <= 0 {
		return nil, shared.NewValidationError("interval", "valuation and shortlist intervals must be positive")
	}
	if cfg.TradeModifier <= 0 {
		return nil, shared.NewValidationError("trade_modifier", "must be positive")
	}

	e := &Engine{
		catalog:  catalog,
		clock:    shared.NewMasterClock(start),
		registry: settlement.NewRegistry(),
		cfg:      cfg,
	}
	e.scheduler = shared.NewTickScheduler(e.clock)
	e.missions = settlement.NewMissionBoard(e.clock)

	env := &market.Environment{Catalog: catalog, Clock: e.clock, Peers: e.registry}
	for _, p := range profiles {
		s, err := settlement.New(p, env)
		if err != nil {
			return nil, err
		}
		if err := e.registry.Add(s); err != nil {
			return nil, err
		}
	}

	e.credit = credit.NewManager(e.clock, cfg.Credit, e.registry.IDs())
	finder, err := commerce.NewFinder(catalog, e.clock, e.registry, e.missions, e.credit, cfg.Commerce)
	if err != nil {
		return nil, err
	}
	e.finder = finder

	for _, s := range e.registry.All() {
		e.finder.Watch(s)
		e.watchValues(s)
	}

	if err := e.scheduler.Every(taskValuation, 0, cfg.ValuationInterval, e.runValuation); err != nil {
		return nil, err
	}
	if err := e.scheduler.Every(taskShortlists, cfg.ListOffset, cfg.ListValidity, e.runShortlists); err != nil {
		return nil, err
	}
	return e, nil
}

// watchValues counts value changes and queues them for the value history
func (e *Engine) watchValues(s *settlement.Settlement) {
	ledger := s.Market()
	ledger.Subscribe(func(ev market.Event) {
		if ev.Type != market.EventValueChanged {
			return
		}
		e.changes++
		if e.history == nil {
			return
		}
		record, err := market.NewValueRecord(ev, ledger.Demand(ev.GoodID), ledger.Supply(ev.GoodID))
		if err != nil {
			return
		}
		e.pending = append(e.pending, record)
	})
}

// SetValueHistory starts recording value changes into repo
func (e *Engine) SetValueHistory(repo market.ValueHistoryRepository) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = repo
}

func (e *Engine) runValuation(now shared.SimTime) {
	elapsed := e.cfg.ValuationInterval / shared.MillisolsPerSol
	for _, s := range e.registry.All() {
		ledger := s.Market()
		ledger.UpdateGoodValues(s)
		for {
			id, ok := ledger.ReserveResourceReview()
			if !ok {
				break
			}
			if _, err := ledger.CheckResourceDemand(s, id, elapsed); err != nil {
				e.warnings = append(e.warnings, fmt.Sprintf("%s: %v", s.ID(), err))
			}
		}
	}
	e.valuations++
}

func (e *Engine) runShortlists(now shared.SimTime) {
	for _, s := range e.registry.All() {
		s.Market().RefreshShortlists(s)
	}
	e.refreshes++
}

// Advance moves the clock forward by millisols. The clock stops at every
// scheduled due time on the way, so each task runs at the time it was
// scheduled for.
func (e *Engine) Advance(ctx context.Context, millisols float64) (TickReport, error) {
	if millisols < 0 {
		return TickReport{}, shared.NewValidationError("millisols", "cannot be negative")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	logger := common.LoggerFromContext(ctx)

	e.valuations, e.refreshes, e.changes, e.warnings = 0, 0, 0, nil
	report := TickReport{From: e.clock.Now()}

	target := report.From.Add(millisols)
	e.scheduler.RunDue()
	for e.clock.Now() < target {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		stop := target
		if due, ok := e.scheduler.NextDue(); ok && due < stop {
			stop = due
		}
		e.clock.AdvanceTo(stop)
		e.scheduler.RunDue()
	}

	report.To = e.clock.Now()
	report.Valuations = e.valuations
	report.Refreshes = e.refreshes
	report.Changes = e.changes
	report.Warnings = e.warnings

	if e.history != nil && len(e.pending) > 0 {
		if err := e.history.Append(ctx, e.pending); err != nil {
			logger.Log("WARN", "failed to record value history", map[string]interface{}{"error": err.Error()})
		}
		e.pending = nil
	}
	for _, w := range report.Warnings {
		logger.Log("WARN", "essential resource review failed", map[string]interface{}{"detail": w})
	}
	logger.Log("INFO", "economy advanced", map[string]interface{}{
		"from":       report.From.String(),
		"to":         report.To.String(),
		"valuations": report.Valuations,
		"refreshes":  report.Refreshes,
		"changes":    report.Changes,
	})
	return report, nil
}

// Now returns the current simulation time
func (e *Engine) Now() shared.SimTime {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Now()
}

// Catalog returns the run's goods catalog
func (e *Engine) Catalog() *goods.Catalog {
	return e.catalog
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// SettlementIDs returns every settlement ID in order
func (e *Engine) SettlementIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.IDs()
}

// Market returns a copy of a settlement's market state
func (e *Engine) Market(settlementID string) (MarketView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.registry.Get(settlementID)
	if err != nil {
		return MarketView{}, err
	}
	ledger := s.Market()
	view := MarketView{
		SettlementID: s.ID(),
		At:           e.clock.Now(),
		RefreshedAt:  ledger.ShortlistsRefreshedAt(),
		Buy:          shortlistRows(ledger.SortedList(ledger.BuyList())),
		Sell:         shortlistRows(ledger.SortedList(ledger.SellList())),
	}
	for _, g := range e.catalog.All() {
		view.Goods = append(view.Goods, GoodView{
			ID:       g.ID(),
			Name:     g.Name(),
			Category: g.Category(),
			Value:    ledger.ValuePoint(g.ID()),
			Demand:   ledger.Demand(g.ID()),
			Supply:   ledger.Supply(g.ID()),
			Price:    ledger.Price(s, g),
			Held:     market.NumberHeld(s, g),
		})
	}
	return view, nil
}

// FindDeal returns the best deal for a settlement, served from the deal
// cache while it is fresh. An empty vehicle name picks the settlement's
// first idle vehicle.
func (e *Engine) FindDeal(ctx context.Context, settlementID string, t commerce.MissionType, vehicleName string) (*commerce.Deal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start, err := e.registry.Get(settlementID)
	if err != nil {
		return nil, err
	}
	v, _, err := e.vehicleFor(start, vehicleName, false)
	if err != nil {
		return nil, err
	}
	deal, err := e.finder.GetDeal(start, t, v)
	if err != nil {
		return nil, err
	}
	common.LoggerFromContext(ctx).Log("INFO", "deal found", map[string]interface{}{
		"deal":    deal.ID().String(),
		"seller":  deal.Seller(),
		"buyer":   deal.Buyer(),
		"profit":  deal.Profit(),
		"skipped": len(deal.Failures()),
	})
	return deal, nil
}

// ExecuteDeal carries out the best deal of a settlement with one of its idle
// vehicles: it plans and starts a mission, delivers the sell load, settles
// credit through negotiation, brings back the buy load and completes the mission.
func (e *Engine) ExecuteDeal(ctx context.Context, settlementID string, t commerce.MissionType, vehicleName string) (*Execution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	logger := common.LoggerFromContext(ctx)

	start, err := e.registry.Get(settlementID)
	if err != nil {
		return nil, err
	}
	v, vehicleGood, err := e.vehicleFor(start, vehicleName, true)
	if err != nil {
		return nil, err
	}
	deal, err := e.finder.GetDeal(start, t, v)
	if err != nil {
		return nil, err
	}
	trading, err := e.registry.Get(deal.Buyer())
	if err != nil {
		return nil, err
	}

	mission, err := e.missions.Plan(t, start.ID(), trading.ID())
	if err != nil {
		return nil, err
	}
	if err := start.Inventory().Dispatch(vehicleGood.ID()); err != nil {
		_ = e.missions.Abort(mission.ID, err.Error())
		return nil, err
	}
	defer start.Inventory().Return(vehicleGood.ID())
	if err := e.missions.Start(mission.ID); err != nil {
		return nil, err
	}

	exec := &Execution{Deal: deal, MissionID: mission.ID}
	sell := deal.SellLoad()
	if err := settlement.Transfer(e.catalog, start, trading, sell); err != nil {
		_ = e.missions.Abort(mission.ID, err.Error())
		return nil, fmt.Errorf("failed to deliver sell load: %w", err)
	}
	exec.Sold = sell

	offer, err := e.finder.NegotiateDeal(start, trading, v, e.cfg.TradeModifier, sell)
	if err != nil {
		_ = e.missions.Abort(mission.ID, err.Error())
		return nil, fmt.Errorf("failed to negotiate: %w", err)
	}
	exec.ReturnOffer = offer.Load

	buy := deal.BuyLoad()
	if err := settlement.Transfer(e.catalog, trading, start, buy); err != nil {
		exec.Warnings = append(exec.Warnings, err.Error())
		logger.Log("WARN", "buy load no longer available", map[string]interface{}{
			"deal":  deal.ID().String(),
			"error": err.Error(),
		})
	} else {
		exec.Bought = buy
	}

	if err := e.missions.Complete(mission.ID); err != nil {
		return nil, err
	}
	e.finder.Invalidate(start.ID())
	e.finder.Invalidate(trading.ID())
	exec.Credit = e.credit.GetCredit(trading.ID(), start.ID())

	logger.Log("INFO", "deal executed", map[string]interface{}{
		"deal":    deal.ID().String(),
		"mission": mission.ID,
		"seller":  start.ID(),
		"buyer":   trading.ID(),
		"sold":    len(exec.Sold),
		"bought":  len(exec.Bought),
		"credit":  exec.Credit,
	})
	return exec, nil
}

// vehicleFor resolves a vehicle spec for a settlement. With owned set the
// settlement must hold an idle unit of it.
func (e *Engine) vehicleFor(s *settlement.Settlement, name string, owned bool) (*settlement.Vehicle, *goods.Good, error) {
	var g *goods.Good
	if name == "" {
		idle := s.IdleVehicles()
		if len(idle) == 0 {
			return nil, nil, shared.NewNotFoundError("idle vehicle", s.ID())
		}
		g = idle[0]
	} else {
		found, err := e.catalog.LookupByName(name)
		if err != nil {
			return nil, nil, err
		}
		if found.Category() != goods.CategoryVehicle {
			return nil, nil, shared.NewValidationError("vehicle", fmt.Sprintf("%s is not a vehicle", name))
		}
		g = found
	}
	if owned {
		if _, idle := s.VehicleCount(g.ID()); idle == 0 {
			return nil, nil, shared.NewNotFoundError("idle vehicle", fmt.Sprintf("%s at %s", g.Name(), s.ID()))
		}
	}

	spec, _ := g.Vehicle()
	v, err := settlement.NewVehicle(spec, spec.FuelCapacity, e.repairParts())
	if err != nil {
		return nil, nil, err
	}
	return v, g, nil
}

func (e *Engine) repairParts() []int {
	var ids []int
	for _, g := range e.catalog.ByCategory(goods.CategoryItemResource) {
		if g.Type() == goods.GoodTypeVehiclePart {
			ids = append(ids, g.ID())
		}
	}
	return ids
}

// Credit returns the credit a holds with b
func (e *Engine) Credit(a, b string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.credit.GetCredit(a, b)
}

// Balances returns every stored pairwise credit balance
func (e *Engine) Balances() []credit.Balance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.credit.Balances()
}

// Missions returns every mission of the run, oldest first
func (e *Engine) Missions() []commerce.Mission {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.missions.Missions()
}

// SubscribeMarket registers fn on every settlement's ledger
func (e *Engine) SubscribeMarket(fn market.Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	var stops []func()
	for _, s := range e.registry.All() {
		stops = append(stops, s.Market().Subscribe(fn))
	}
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for _, stop := range stops {
			stop()
		}
	}
}

// SubscribeCredit registers fn for credit changes
func (e *Engine) SubscribeCredit(fn credit.Listener) func() {
	return e.credit.Subscribe(fn)
}

// SubscribeDeals registers fn for newly computed deals
func (e *Engine) SubscribeDeals(fn commerce.Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	stop := e.finder.Subscribe(fn)
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		stop()
	}
}

// Snapshot captures the persisted state of the run
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		At:       e.clock.Now(),
		Balances: e.credit.Balances(),
		Costs:    e.catalog.CostStates(),
	}
	for _, s := range e.registry.All() {
		snap.Ledgers = append(snap.Ledgers, s.Market().State())
	}
	return snap
}

// Restore installs a snapshot. The snapshot may not lie before the current
// time; scheduled tasks missed in between are skipped, not replayed.
func (e *Engine) Restore(snap Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if snap.At < e.clock.Now() {
		return shared.NewValidationError("at", fmt.Sprintf("snapshot at %s precedes %s", snap.At, e.clock.Now()))
	}
	for _, state := range snap.Ledgers {
		if _, err := e.registry.Get(state.SettlementID); err != nil {
			return err
		}
	}

	if err := e.catalog.RestoreCosts(snap.Costs); err != nil {
		return err
	}
	for _, state := range snap.Ledgers {
		s, _ := e.registry.Get(state.SettlementID)
		if err := s.Market().Restore(state); err != nil {
			return err
		}
	}
	if err := e.credit.Restore(snap.Balances); err != nil {
		return err
	}

	e.clock.AdvanceTo(snap.At)
	e.scheduler.SkipTo(e.clock.Now())
	for _, s := range e.registry.All() {
		e.finder.Invalidate(s.ID())
	}
	return nil
}

// ParseMissionType accepts mission types in any case
func ParseMissionType(s string) (commerce.MissionType, error) {
	return commerce.ParseMissionType(strings.ToUpper(s))
}

// LoadNames renders a load as sorted "name=qty" pairs
func LoadNames(catalog *goods.Catalog, load commerce.Load) []string {
	out := make([]string, 0, len(load))
	for _, id := range load.IDs() {
		name := fmt.Sprint(id)
		if g, err := catalog.Lookup(id); err == nil {
			name = g.Name()
		}
		out = append(out, fmt.Sprintf("%s=%d", name, load[id]))
	}
	sort.Strings(out)
	return out
}
