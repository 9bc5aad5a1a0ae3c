package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/test/helpers"
)

func withRegistry(t *testing.T) {
	t.Helper()
	InitRegistry()
	t.Cleanup(func() { Registry = nil })
}

func TestEconomyMetricsCollector_FollowsEngineEvents(t *testing.T) {
	// Arrange
	withRegistry(t)
	engine := helpers.NewTestEngine(t, helpers.TradingPairProfiles(), economy.DefaultConfig())
	collector := NewEconomyMetricsCollector(engine.Catalog())
	require.NoError(t, collector.Register())
	stop := collector.Attach(engine)
	defer stop()
	ctx := context.Background()

	// Act
	report, err := engine.Advance(ctx, 600)
	require.NoError(t, err)
	collector.RecordTick(report)
	deal, err := engine.FindDeal(ctx, "alpha", commerce.MissionTrade, "")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.refreshesTotal.WithLabelValues("alpha")))
	assert.Positive(t, testutil.ToFloat64(collector.valueChangesTotal.WithLabelValues("beta")))
	assert.Equal(t, 600.0, testutil.ToFloat64(collector.simTime))
	assert.Equal(t, 13.0, testutil.ToFloat64(collector.valuationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.dealsTotal.WithLabelValues("alpha", "TRADE")))
	assert.Equal(t, deal.Profit(), testutil.ToFloat64(collector.dealProfit.WithLabelValues("alpha", "TRADE", "beta")))
	assert.Positive(t, testutil.CollectAndCount(collector.goodValue))
}

func TestEconomyMetricsCollector_RegisterWithoutRegistry(t *testing.T) {
	Registry = nil
	collector := NewEconomyMetricsCollector(nil)

	assert.NoError(t, collector.Register())
	assert.False(t, IsEnabled())
	assert.Equal(t, "42", collector.goodName(42))
}

