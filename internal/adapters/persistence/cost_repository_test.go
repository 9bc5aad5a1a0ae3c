package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/persistence"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/test/helpers"
)

func TestCostRepository_RoundTripsCatalogCosts(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCostRepository(db)
	ctx := context.Background()
	catalog, err := goods.NewStandardCatalog()
	require.NoError(t, err)
	water, err := catalog.LookupByName(goods.Water)
	require.NoError(t, err)
	water.SetInterMarketValue(2.5)
	states := catalog.CostStates()

	// Act
	require.NoError(t, repo.SaveCosts(ctx, states))
	require.NoError(t, repo.SaveCosts(ctx, states))
	loaded, err := repo.LoadCosts(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, states, loaded)

	fresh, err := goods.NewStandardCatalog()
	require.NoError(t, err)
	require.NoError(t, fresh.RestoreCosts(loaded))
	freshWater, _ := fresh.LookupByName(goods.Water)
	v, ok := freshWater.InterMarketValue()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
}
