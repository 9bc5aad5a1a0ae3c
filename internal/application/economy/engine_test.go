package economy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/settlement"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.messages = append(l.messages, level+" "+message)
}

func profiles() []settlement.Profile {
	return []settlement.Profile{
		{
			ID: "alpha", Phi: 1.0, Theta: 0.5, Citizens: 12, Objective: "TRADE_CENTER",
			Resources: map[string]float64{goods.Water: 9000, goods.Oxygen: 2000, goods.Methanol: 3000},
			Items:     map[string]int{"steel sheet": 400, goods.Barrel: 40, goods.GasCanister: 40},
			Vehicles:  map[string]int{"cargo rover": 1},
		},
		{
			ID: "beta", Phi: 1.02, Theta: 0.52, Citizens: 20,
			Resources: map[string]float64{goods.Water: 200, goods.Food: 3000},
			Items:     map[string]int{"valve": 200, goods.Bag: 60},
		},
	}
}

func newEngine(t *testing.T, cfg economy.Config) *economy.Engine {
	t.Helper()
	catalog, err := goods.NewStandardCatalog()
	require.NoError(t, err)
	engine, err := economy.NewEngine(catalog, 0, profiles(), cfg)
	require.NoError(t, err)
	return engine
}

func TestAdvance_RunsValuationAndShortlistCadences(t *testing.T) {
	// Arrange
	engine := newEngine(t, economy.DefaultConfig())
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	report, err := engine.Advance(ctx, 600)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, shared.SimTime(0), report.From)
	assert.Equal(t, shared.SimTime(600), report.To)
	assert.Equal(t, 13, report.Valuations)
	assert.Equal(t, 2, report.Refreshes)
	assert.Positive(t, report.Changes)
	assert.Contains(t, logger.messages, "INFO economy advanced")

	view, err := engine.Market("beta")
	require.NoError(t, err)
	assert.Equal(t, shared.SimTime(510), view.RefreshedAt)
	assert.NotEmpty(t, view.Buy)
}

func TestAdvance_FiresTasksAtTheirScheduledTime(t *testing.T) {
	// Arrange
	engine := newEngine(t, economy.DefaultConfig())
	var refreshes []shared.SimTime
	engine.SubscribeMarket(func(e market.Event) {
		if e.Type == market.EventShortlistsRefreshed && e.SettlementID == "beta" {
			refreshes = append(refreshes, e.At)
		}
	})

	// Act: steps that never land on a due time
	for i := 0; i < 8; i++ {
		_, err := engine.Advance(context.Background(), 70)
		require.NoError(t, err)
	}

	// Assert
	assert.Equal(t, shared.SimTime(560), engine.Now())
	assert.Equal(t, []shared.SimTime{10, 510}, refreshes)
}

func TestAdvance_RejectsNegativeTime(t *testing.T) {
	engine := newEngine(t, economy.DefaultConfig())

	_, err := engine.Advance(context.Background(), -1)

	assert.Error(t, err)
}

func TestNewEngine_RejectsBadConfig(t *testing.T) {
	catalog, err := goods.NewStandardCatalog()
	require.NoError(t, err)
	cfg := economy.DefaultConfig()
	cfg.TradeModifier = 0

	_, err = economy.NewEngine(catalog, 0, profiles(), cfg)

	assert.Error(t, err)
}

func TestFindDeal_CachesUntilShortlistsRefresh(t *testing.T) {
	// Arrange
	engine := newEngine(t, economy.DefaultConfig())
	ctx := context.Background()
	_, err := engine.Advance(ctx, 100)
	require.NoError(t, err)
	var computed []commerce.DealComputed
	engine.SubscribeDeals(func(e commerce.DealComputed) { computed = append(computed, e) })

	// Act
	first, err := engine.FindDeal(ctx, "alpha", commerce.MissionTrade, "")
	require.NoError(t, err)
	again, err := engine.FindDeal(ctx, "alpha", commerce.MissionTrade, "")
	require.NoError(t, err)
	_, err = engine.Advance(ctx, 500)
	require.NoError(t, err)
	fresh, err := engine.FindDeal(ctx, "alpha", commerce.MissionTrade, "")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "beta", first.Buyer())
	assert.Equal(t, first.ID(), again.ID())
	assert.NotEqual(t, first.ID(), fresh.ID())
	assert.Len(t, computed, 2)
}

func TestFindDeal_UnknownSettlementAndVehicle(t *testing.T) {
	engine := newEngine(t, economy.DefaultConfig())
	ctx := context.Background()

	_, err := engine.FindDeal(ctx, "gamma", commerce.MissionTrade, "")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = engine.FindDeal(ctx, "beta", commerce.MissionTrade, "")
	assert.ErrorIs(t, err, shared.ErrNotFound, "beta has no idle vehicle")

	_, err = engine.FindDeal(ctx, "alpha", commerce.MissionTrade, "steel sheet")
	assert.Error(t, err)
}

func TestExecuteDeal_CompletesMissionAndSettlesCredit(t *testing.T) {
	// Arrange
	cfg := economy.DefaultConfig()
	cfg.Credit = credit.Policy{PersistAmounts: true}
	engine := newEngine(t, cfg)
	ctx := context.Background()
	_, err := engine.Advance(ctx, 100)
	require.NoError(t, err)
	var changes []credit.Event
	engine.SubscribeCredit(func(e credit.Event) { changes = append(changes, e) })

	// Act
	exec, err := engine.ExecuteDeal(ctx, "alpha", commerce.MissionTrade, "cargo rover")

	// Assert
	require.NoError(t, err)
	missions := engine.Missions()
	require.Len(t, missions, 1)
	assert.Equal(t, exec.MissionID, missions[0].ID)
	assert.Equal(t, commerce.MissionCompleted, missions[0].Status)
	assert.Equal(t, exec.Credit, engine.Credit("beta", "alpha"))
	assert.Equal(t, 0.0, engine.Credit("alpha", "beta"))
	assert.Len(t, changes, 2)

	view, err := engine.Market("alpha")
	require.NoError(t, err)
	for _, g := range view.Goods {
		if g.Category == goods.CategoryVehicle && g.Name == "cargo rover" {
			assert.Equal(t, 1.0, g.Held, "rover is back from the trip")
		}
	}
}

func TestExecuteDeal_RequiresIdleVehicle(t *testing.T) {
	engine := newEngine(t, economy.DefaultConfig())
	_, err := engine.Advance(context.Background(), 100)
	require.NoError(t, err)

	_, err = engine.ExecuteDeal(context.Background(), "alpha", commerce.MissionTrade, "explorer rover")

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, engine.Missions())
}

func TestSnapshot_RestoresIntoFreshEngine(t *testing.T) {
	// Arrange
	cfg := economy.DefaultConfig()
	cfg.Credit = credit.Policy{PersistAmounts: true}
	source := newEngine(t, cfg)
	ctx := context.Background()
	_, err := source.Advance(ctx, 700)
	require.NoError(t, err)
	_, err = source.ExecuteDeal(ctx, "alpha", commerce.MissionTrade, "")
	require.NoError(t, err)
	snap := source.Snapshot()

	target := newEngine(t, cfg)

	// Act
	err = target.Restore(snap)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, snap.At, target.Now())
	assert.Equal(t, source.Balances(), target.Balances())
	want, err := source.Market("beta")
	require.NoError(t, err)
	got, err := target.Market("beta")
	require.NoError(t, err)
	for i := range want.Goods {
		assert.Equal(t, want.Goods[i].Value, got.Goods[i].Value, want.Goods[i].Name)
	}

	report, err := target.Advance(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, report.Valuations, "missed ticks are not replayed")
}

func TestRestore_RejectsSnapshotFromThePast(t *testing.T) {
	engine := newEngine(t, economy.DefaultConfig())
	_, err := engine.Advance(context.Background(), 100)
	require.NoError(t, err)

	err = engine.Restore(economy.Snapshot{At: 50})

	assert.Error(t, err)
}

func TestSubscribeMarket_ReceivesValueChanges(t *testing.T) {
	engine := newEngine(t, economy.DefaultConfig())
	var events []market.Event
	stop := engine.SubscribeMarket(func(e market.Event) { events = append(events, e) })

	_, err := engine.Advance(context.Background(), 50)
	require.NoError(t, err)
	stop()
	seen := len(events)
	_, err = engine.Advance(context.Background(), 50)
	require.NoError(t, err)

	assert.Positive(t, seen)
	assert.Equal(t, seen, len(events))
}
