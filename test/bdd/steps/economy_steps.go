package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cucumber/godog"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/persistence"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/settlement"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
	"github.com/mars-sim/mars-sim-sub053/test/helpers"
)

type economyContext struct {
	profiles []settlement.Profile
	engine   *economy.Engine
	restored *economy.Engine
	report   economy.TickReport
	deals    []*commerce.Deal
	computed int
	exec     *economy.Execution
	err      error
}

func (e *economyContext) reset() error {
	*e = economyContext{}
	return helpers.TruncateAllTables()
}

// InitializeEconomyScenario registers the economy engine steps
func InitializeEconomyScenario(sc *godog.ScenarioContext) {
	e := &economyContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		return ctx, e.reset()
	})

	// Given steps
	sc.Step(`^the settlements:$`, e.theSettlements)
	sc.Step(`^an economy engine starting at (\d+) millisols$`, e.anEngine)
	sc.Step(`^an economy engine starting at (\d+) millisols that persists credit$`, e.anEngineThatPersistsCredit)
	sc.Step(`^the economy has advanced (\d+) millisols$`, e.theEconomyAdvances)
	sc.Step(`^"([^"]*)" has executed a (TRADE|DELIVERY) deal with its "([^"]*)"$`, e.executesDeal)

	// When steps
	sc.Step(`^the economy advances (\d+) millisols$`, e.theEconomyAdvances)
	sc.Step(`^"([^"]*)" looks for a (TRADE|DELIVERY) deal$`, e.looksForDeal)
	sc.Step(`^"([^"]*)" executes a (TRADE|DELIVERY) deal with its "([^"]*)"$`, e.executesDeal)
	sc.Step(`^the economy state is saved to the database$`, e.stateIsSaved)
	sc.Step(`^a fresh engine is restored from the database at (\d+) millisols$`, e.freshEngineRestored)

	// Then steps
	sc.Step(`^(\d+) valuation ticks should have run$`, e.valuationTicks)
	sc.Step(`^(\d+) shortlist refreshes should have run$`, e.shortlistRefreshes)
	sc.Step(`^the shortlists of "([^"]*)" should have been refreshed at (\d+) millisols$`, e.refreshedAt)
	sc.Step(`^"([^"]*)" should be buying goods$`, e.shouldBeBuying)
	sc.Step(`^both deals should be the same$`, e.bothDealsSame)
	sc.Step(`^the deal buyer should be "([^"]*)"$`, e.dealBuyer)
	sc.Step(`^(\d+) deals? should have been computed$`, e.dealsComputed)
	sc.Step(`^the mission should be completed$`, e.missionCompleted)
	sc.Step(`^"([^"]*)" should hold the deal credit toward "([^"]*)"$`, e.shouldHoldDealCredit)
	sc.Step(`^the request should fail as not found$`, e.failsAsNotFound)
	sc.Step(`^the restored value of "([^"]*)" at "([^"]*)" should match$`, e.restoredValueMatches)
	sc.Step(`^the restored credit of "([^"]*)" toward "([^"]*)" should match$`, e.restoredCreditMatches)
}

func (e *economyContext) theSettlements(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		phi, err := strconv.ParseFloat(getCellValue(table, row, "phi"), 64)
		if err != nil {
			return err
		}
		theta, err := strconv.ParseFloat(getCellValue(table, row, "theta"), 64)
		if err != nil {
			return err
		}
		citizens, err := strconv.Atoi(getCellValue(table, row, "citizens"))
		if err != nil {
			return err
		}
		resources, err := parseQuantities(getCellValue(table, row, "resources"))
		if err != nil {
			return err
		}
		items, err := parseCounts(getCellValue(table, row, "items"))
		if err != nil {
			return err
		}
		vehicles, err := parseCounts(getCellValue(table, row, "vehicles"))
		if err != nil {
			return err
		}

		e.profiles = append(e.profiles, settlement.Profile{
			ID:        getCellValue(table, row, "id"),
			Phi:       phi,
			Theta:     theta,
			Citizens:  citizens,
			Objective: getCellValue(table, row, "objective"),
			Resources: resources,
			Items:     items,
			Vehicles:  vehicles,
		})
	}
	return nil
}

func (e *economyContext) build(start int, cfg economy.Config) (*economy.Engine, error) {
	catalog, err := goods.NewStandardCatalog()
	if err != nil {
		return nil, err
	}
	return economy.NewEngine(catalog, shared.SimTime(start), e.profiles, cfg)
}

func (e *economyContext) startEngine(start int, cfg economy.Config) error {
	engine, err := e.build(start, cfg)
	if err != nil {
		return err
	}
	engine.SubscribeDeals(func(commerce.DealComputed) { e.computed++ })
	e.engine = engine
	return nil
}

func (e *economyContext) anEngine(start int) error {
	return e.startEngine(start, economy.DefaultConfig())
}

func (e *economyContext) anEngineThatPersistsCredit(start int) error {
	cfg := economy.DefaultConfig()
	cfg.Credit = credit.Policy{PersistAmounts: true}
	return e.startEngine(start, cfg)
}

func (e *economyContext) theEconomyAdvances(millisols int) error {
	report, err := e.engine.Advance(context.Background(), float64(millisols))
	e.report = report
	return err
}

func (e *economyContext) looksForDeal(id, mission string) error {
	deal, err := e.engine.FindDeal(context.Background(), id, commerce.MissionType(mission), "")
	e.err = err
	if err == nil {
		e.deals = append(e.deals, deal)
	}
	return nil
}

func (e *economyContext) executesDeal(id, mission, vehicle string) error {
	exec, err := e.engine.ExecuteDeal(context.Background(), id, commerce.MissionType(mission), vehicle)
	if err != nil {
		return err
	}
	e.exec = exec
	return nil
}

func (e *economyContext) stateIsSaved() error {
	return e.store().Save(context.Background(), e.engine.Snapshot())
}

func (e *economyContext) freshEngineRestored(at int) error {
	engine, err := e.build(0, e.engine.Config())
	if err != nil {
		return err
	}
	snap, err := e.store().Load(context.Background(), engine.SettlementIDs(), shared.SimTime(at))
	if err != nil {
		return err
	}
	if err := engine.Restore(snap); err != nil {
		return err
	}
	e.restored = engine
	return nil
}

func (e *economyContext) store() *economy.Store {
	db := helpers.SharedTestDB
	return economy.NewStore(
		persistence.NewGormLedgerRepository(db),
		persistence.NewGormCreditRepository(db),
		persistence.NewGormCostRepository(db),
	)
}

func (e *economyContext) valuationTicks(n int) error {
	if e.report.Valuations != n {
		return fmt.Errorf("expected %d valuation ticks, got %d", n, e.report.Valuations)
	}
	return nil
}

func (e *economyContext) shortlistRefreshes(n int) error {
	if e.report.Refreshes != n {
		return fmt.Errorf("expected %d shortlist refreshes, got %d", n, e.report.Refreshes)
	}
	return nil
}

func (e *economyContext) refreshedAt(id string, at int) error {
	view, err := e.engine.Market(id)
	if err != nil {
		return err
	}
	if view.RefreshedAt != shared.SimTime(at) {
		return fmt.Errorf("expected shortlists of %s refreshed at %d, got %s", id, at, view.RefreshedAt)
	}
	return nil
}

func (e *economyContext) shouldBeBuying(id string) error {
	view, err := e.engine.Market(id)
	if err != nil {
		return err
	}
	if len(view.Buy) == 0 {
		return fmt.Errorf("expected %s to have goods on its buy list", id)
	}
	return nil
}

func (e *economyContext) bothDealsSame() error {
	if len(e.deals) < 2 {
		return fmt.Errorf("expected two deals, got %d", len(e.deals))
	}
	if a, b := e.deals[0].ID(), e.deals[1].ID(); a != b {
		return fmt.Errorf("expected the cached deal %s, got %s", a, b)
	}
	return nil
}

func (e *economyContext) dealBuyer(buyer string) error {
	if len(e.deals) == 0 {
		return fmt.Errorf("no deal was found: %v", e.err)
	}
	if got := e.deals[len(e.deals)-1].Buyer(); got != buyer {
		return fmt.Errorf("expected buyer %s, got %s", buyer, got)
	}
	return nil
}

func (e *economyContext) dealsComputed(n int) error {
	if e.computed != n {
		return fmt.Errorf("expected %d deals computed, got %d", n, e.computed)
	}
	return nil
}

func (e *economyContext) missionCompleted() error {
	if e.exec == nil {
		return fmt.Errorf("no deal was executed")
	}
	for _, m := range e.engine.Missions() {
		if m.ID == e.exec.MissionID {
			if m.Status != commerce.MissionCompleted {
				return fmt.Errorf("expected mission %s completed, got %s", m.ID, m.Status)
			}
			return nil
		}
	}
	return fmt.Errorf("mission %s not found", e.exec.MissionID)
}

func (e *economyContext) shouldHoldDealCredit(holder, counterpart string) error {
	if e.exec == nil {
		return fmt.Errorf("no deal was executed")
	}
	if got := e.engine.Credit(holder, counterpart); got != e.exec.Credit {
		return fmt.Errorf("expected credit of %s toward %s to be %g, got %g", holder, counterpart, e.exec.Credit, got)
	}
	if got := e.engine.Credit(counterpart, holder); got != 0 {
		return fmt.Errorf("expected credit of %s toward %s to stay 0, got %g", counterpart, holder, got)
	}
	return nil
}

func (e *economyContext) failsAsNotFound() error {
	if !errors.Is(e.err, shared.ErrNotFound) {
		return fmt.Errorf("expected a not found error, got %v", e.err)
	}
	return nil
}

func (e *economyContext) restoredValueMatches(good, id string) error {
	want, err := goodValue(e.engine, id, good)
	if err != nil {
		return err
	}
	got, err := goodValue(e.restored, id, good)
	if err != nil {
		return err
	}
	if math.Abs(want-got) > 1e-9 {
		return fmt.Errorf("expected restored value of %s at %s to be %g, got %g", good, id, want, got)
	}
	return nil
}

func (e *economyContext) restoredCreditMatches(a, b string) error {
	if want, got := e.engine.Credit(a, b), e.restored.Credit(a, b); want != got {
		return fmt.Errorf("expected restored credit %g, got %g", want, got)
	}
	return nil
}

func goodValue(engine *economy.Engine, id, name string) (float64, error) {
	view, err := engine.Market(id)
	if err != nil {
		return 0, err
	}
	for _, g := range view.Goods {
		if g.Name == name {
			return g.Value, nil
		}
	}
	return 0, fmt.Errorf("%s is not in the market of %s", name, id)
}
