package market_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

func TestNewLedger_SeedsCategoryDefaults(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	oxygen := f.good(t, goods.Oxygen)
	valve := f.good(t, "valve")

	ledger := site.ledger

	assert.Equal(t, 1.0, ledger.ValuePoint(oxygen.ID()))
	assert.Equal(t, market.MinDemand, ledger.Demand(oxygen.ID()))
	assert.Equal(t, market.MinSupply, ledger.Supply(oxygen.ID()))
	assert.Equal(t, 30.0, ledger.Demand(valve.ID()))
	assert.Equal(t, 1.0, ledger.Supply(valve.ID()))
	assert.Equal(t, 0, ledger.DeflationIndex(valve.ID()))
	assert.False(t, ledger.Initialized())
}

func TestNewLedger_RequiresCatalogAndClock(t *testing.T) {
	_, err := market.NewLedger("alpha", &market.Environment{})
	var cfgErr *shared.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = market.NewLedger("", &market.Environment{})
	var valErr *shared.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestUpdateGoodValues_KeepsDemandAndSupplyWithinBounds(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	site.citizens = 5000
	site.power = 1
	site.tech[goods.ProcessManufacturing] = 4
	site.tech[goods.ProcessFoodProduction] = 2
	site.jobs[market.JobAreologist] = 400
	for _, g := range f.catalog.All() {
		site.amounts[g.ID()] = 1e9
		site.items[g.ID()] = 1_000_000
		site.vehicles[g.ID()] = [2]int{50, 40}
		site.fuel[g.ID()] = 1e6
	}

	for tick := 0; tick < 5; tick++ {
		site.ledger.UpdateGoodValues(site)
	}

	for _, g := range f.catalog.All() {
		demand := site.ledger.Demand(g.ID())
		supply := site.ledger.Supply(g.ID())
		assert.GreaterOrEqual(t, demand, market.MinDemand, g.Name())
		assert.LessOrEqual(t, demand, market.MaxDemand, g.Name())
		assert.GreaterOrEqual(t, supply, market.MinSupply, g.Name())
		assert.LessOrEqual(t, supply, market.MaxSupply, g.Name())
	}
	assert.True(t, site.ledger.Initialized())
}

func TestUpdateGoodValues_BlendsEVASuitDemandFirstThenSteadily(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	site.citizens = 4
	suit := f.good(t, "eva suit")
	site.items[suit.ID()] = 3

	site.ledger.UpdateGoodValues(site)

	// projected = 1 + modifier 1 + 2 per citizen; no peers so trade is 0
	assert.InDelta(t, 5.0, site.ledger.Demand(suit.ID()), 1e-9)
	assert.InDelta(t, 2.0, site.ledger.Supply(suit.ID()), 1e-9)
	assert.InDelta(t, 5.0/3.0, site.ledger.ValuePoint(suit.ID()), 1e-9)
	assert.InDelta(t, 10.0, site.ledger.ProjectedDemand(suit.ID()), 1e-9)

	site.ledger.UpdateGoodValues(site)

	assert.InDelta(t, 0.97*5+0.005*10, site.ledger.Demand(suit.ID()), 1e-9)
}

func TestGoodValueWithSupply_IsNonIncreasingInSupply(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	id := f.good(t, goods.Water).ID()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		site.ledger.SetDemand(id, rng.Float64()*market.MaxDemand)
		a := rng.Float64() * 100
		b := a + rng.Float64()*100

		assert.GreaterOrEqual(t, site.ledger.GoodValueWithSupply(id, a), site.ledger.GoodValueWithSupply(id, b))
	}

	site.ledger.SetDemand(id, 10)
	assert.False(t, math.IsInf(site.ledger.GoodValueWithSupply(id, 0), 1))
	assert.Equal(t, site.ledger.GoodValueWithSupply(id, market.MinSupply), site.ledger.GoodValueWithSupply(id, 0))
}

func TestDetermineTradeDemand_DiscountsPeerValueByDistance(t *testing.T) {
	f := newFixture(t)
	home := f.addSite(t, "alpha")
	peer := f.addSite(t, "beta")
	home.coords = shared.Coordinates{Phi: math.Pi / 2, Theta: 0}
	peer.coords = shared.Coordinates{Phi: math.Pi / 2, Theta: 1000 / shared.MarsRadiusKm}
	peer.citizens = 20
	oxygen := f.good(t, goods.Oxygen)
	peer.ledger.UpdateGoodValues(peer)

	trade := home.ledger.DetermineTradeDemand(home, oxygen)

	assert.InDelta(t, peer.ledger.ValuePoint(oxygen.ID())/2, trade, 1e-6)
	assert.Equal(t, trade, home.ledger.TradeDemand(oxygen.ID()))
}

func TestShortlists_NeverIncludeExcludedRegolith(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	regolith := f.good(t, goods.Regolith)
	oxygen := f.good(t, goods.Oxygen)
	water := f.good(t, goods.Water)
	site.amounts[regolith.ID()] = 10_000
	site.amounts[water.ID()] = 1_000
	site.ledger.SetDemand(regolith.ID(), market.MaxDemand)
	site.ledger.SetSupply(regolith.ID(), market.MinSupply)
	site.ledger.SetDemand(oxygen.ID(), 100)
	site.ledger.SetSupply(oxygen.ID(), 1)

	buy := site.ledger.CalculateBuyList(site)
	sell := site.ledger.CalculateSellList(site)

	assert.NotContains(t, buy, regolith.ID())
	assert.NotContains(t, sell, regolith.ID())
	require.Contains(t, buy, oxygen.ID())
	assert.GreaterOrEqual(t, buy[oxygen.ID()].Quantity, 10)
	require.Contains(t, sell, water.ID())
	assert.Equal(t, 100, sell[water.ID()].Quantity)
	assert.NotContains(t, sell, oxygen.ID())
}

func TestShortlists_PriceBuyEntriesWithMarkup(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	valve := f.good(t, "valve")
	site.items[valve.ID()] = 200

	buy := site.ledger.CalculateBuyList(site)

	require.Contains(t, buy, valve.ID())
	assert.InDelta(t, site.ledger.Price(site, valve)*1.1, buy[valve.ID()].Price, 1e-9)
	assert.Equal(t, 20, buy[valve.ID()].Quantity)
}

func TestRefreshShortlists_NotifiesListeners(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	f.clock.SetTime(750)
	var events []market.Event
	unsubscribe := site.ledger.Subscribe(func(e market.Event) { events = append(events, e) })

	site.ledger.RefreshShortlists(site)

	require.Len(t, events, 1)
	assert.Equal(t, market.EventShortlistsRefreshed, events[0].Type)
	assert.Equal(t, "alpha", events[0].SettlementID)
	assert.Equal(t, shared.SimTime(750), site.ledger.ShortlistsRefreshedAt())

	unsubscribe()
	site.ledger.RefreshShortlists(site)

	assert.Len(t, events, 1)
}

func TestUpdateGoodValues_PublishesValueChanges(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	site.citizens = 4
	var changed []market.Event
	site.ledger.Subscribe(func(e market.Event) {
		if e.Type == market.EventValueChanged {
			changed = append(changed, e)
		}
	})

	site.ledger.UpdateGoodValues(site)

	require.NotEmpty(t, changed)
	for _, e := range changed {
		assert.NotEqual(t, e.OldValue, e.NewValue)
		assert.Equal(t, e.NewValue, site.ledger.ValuePoint(e.GoodID))
	}
}

func TestCommerceFactor_DefaultsToOneAndWeighsResearch(t *testing.T) {
	f := newFixture(t)
	ledger := f.addSite(t, "alpha").ledger

	ledger.SetCommerceFactor(market.CommerceResearch, 2)
	ledger.SetCommerceFactor(market.CommerceTrade, 2)

	assert.Equal(t, 3.0, ledger.CommerceFactor(market.CommerceResearch))
	assert.Equal(t, 2.0, ledger.CommerceFactor(market.CommerceTrade))
	assert.Equal(t, 1.0, ledger.CommerceFactor(market.CommerceCrop))

	ledger.ResetCommerceFactors()
	assert.Equal(t, 1.0, ledger.CommerceFactor(market.CommerceResearch))
}

func TestPriorityLevels_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ledger := f.addSite(t, "alpha").ledger

	for _, level := range []int{0, 1, 2, 3, 5} {
		ledger.SetRepairPriority(level)
		ledger.SetMaintenancePriority(level)
		ledger.SetEVASuitPriority(level)

		assert.Equal(t, level, ledger.RepairLevel())
		assert.Equal(t, level, ledger.MaintenanceLevel())
		assert.Equal(t, level, ledger.EVASuitLevel())
	}

	ledger.SetRepairPriority(9)
	assert.Equal(t, 5, ledger.RepairLevel())
}

func TestParseCommerceTypeAndObjective(t *testing.T) {
	c, err := market.ParseCommerceType("TOURISM")
	require.NoError(t, err)
	assert.Equal(t, market.CommerceTourism, c)

	_, err = market.ParseCommerceType("PIRACY")
	assert.ErrorIs(t, err, market.ErrInvalidCommerceType)

	o, err := market.ParseObjective("")
	require.NoError(t, err)
	assert.Equal(t, market.ObjectiveNone, o)

	_, err = market.ParseObjective("MINING_OUTPOST")
	assert.ErrorIs(t, err, market.ErrInvalidObjective)
}

func TestCheckResourceDemand_RaisesDemandWhenShort(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	site.citizens = 10
	oxygen := f.good(t, goods.Oxygen)
	site.ledger.SetEssentialLimits(map[int]market.EssentialLimit{
		oxygen.ID(): {Reserve: 10, Max: 100},
	})

	changed, err := site.ledger.CheckResourceDemand(site, oxygen.ID(), 1)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.InDelta(t, 1+market.CheckResources, site.ledger.Demand(oxygen.ID()), 1e-9)
}

func TestCheckResourceDemand_LeavesStockedResourceAlone(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	site.citizens = 10
	oxygen := f.good(t, goods.Oxygen)
	site.amounts[oxygen.ID()] = 1_000
	site.ledger.SetEssentialLimits(map[int]market.EssentialLimit{
		oxygen.ID(): {Reserve: 10, Max: 100},
	})

	changed, err := site.ledger.CheckResourceDemand(site, oxygen.ID(), 1)

	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCheckResourceDemand_RejectsNonEssential(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")

	_, err := site.ledger.CheckResourceDemand(site, f.good(t, goods.Water).ID(), 1)

	assert.ErrorIs(t, err, market.ErrNotEssential)
}

func TestReserveResourceReview_VisitsEachEssentialOncePerTick(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	oxygen := f.good(t, goods.Oxygen)
	water := f.good(t, goods.Water)
	site.ledger.SetEssentialLimits(map[int]market.EssentialLimit{
		oxygen.ID(): {Reserve: 1, Max: 10},
		water.ID():  {Reserve: 1, Max: 10},
	})

	first, ok1 := site.ledger.ReserveResourceReview()
	second, ok2 := site.ledger.ReserveResourceReview()
	_, ok3 := site.ledger.ReserveResourceReview()

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.False(t, ok3)
	assert.ElementsMatch(t, []int{oxygen.ID(), water.ID()}, []int{first, second})

	site.ledger.UpdateGoodValues(site)
	assert.Equal(t, 2, site.ledger.ResourceReviewDue())
}

func TestInjectPartDemand_RaisesDemandForMaintenanceShortfall(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	valve := f.good(t, "valve")
	site.maintenance[valve.ID()] = 2

	injected := site.ledger.InjectPartDemand(site, valve, 2)

	assert.True(t, injected)
	assert.Greater(t, site.ledger.Demand(valve.ID()), 30.0)
	assert.False(t, site.ledger.InjectPartDemand(site, f.good(t, goods.Water), 2))
}

func TestState_RestoresIntoFreshLedger(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	site.citizens = 12
	site.ledger.SetCommerceFactor(market.CommerceTrade, 2)
	site.ledger.UpdateGoodValues(site)
	state := site.ledger.State()

	restored, err := market.NewLedger("alpha", f.env)
	require.NoError(t, err)
	require.NoError(t, restored.Restore(state))

	for _, g := range f.catalog.All() {
		assert.Equal(t, site.ledger.ValuePoint(g.ID()), restored.ValuePoint(g.ID()))
		assert.Equal(t, site.ledger.Demand(g.ID()), restored.Demand(g.ID()))
		assert.Equal(t, site.ledger.Supply(g.ID()), restored.Supply(g.ID()))
	}
	assert.Equal(t, 2.0, restored.CommerceFactor(market.CommerceTrade))
	assert.True(t, restored.Initialized())
}

func TestState_RestoreRejectsOtherSettlement(t *testing.T) {
	f := newFixture(t)
	alpha := f.addSite(t, "alpha")
	beta := f.addSite(t, "beta")

	err := beta.ledger.Restore(alpha.ledger.State())

	assert.True(t, errors.Is(err, market.ErrSettlementMismatch))
}

func TestPrice_UsesHeldQuantity(t *testing.T) {
	f := newFixture(t)
	site := f.addSite(t, "alpha")
	water := f.good(t, goods.Water)
	site.amounts[water.ID()] = 500

	price := site.ledger.Price(site, water)

	assert.InDelta(t, goods.Price(water, site.ledger.ValuePoint(water.ID()), 500), price, 1e-12)
	assert.Equal(t, 500.0, market.NumberHeld(site, water))
}
