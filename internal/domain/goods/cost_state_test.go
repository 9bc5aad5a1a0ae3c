package goods_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

func TestCostStates_RestoreIntoFreshCatalog(t *testing.T) {
	// Arrange
	source := newStandardCatalog(t)
	lookup(t, source, goods.Water).SetInterMarketValue(42)
	states := source.CostStates()
	target := newStandardCatalog(t)

	// Act
	err := target.RestoreCosts(states)

	// Assert
	require.NoError(t, err)
	water := lookup(t, target, goods.Water)
	assert.Equal(t, lookup(t, source, goods.Water).CostOutput(), water.CostOutput())
	v, ok := water.InterMarketValue()
	require.True(t, ok)
	assert.Equal(t, 42.0, v)
	_, ok = lookup(t, target, goods.Oxygen).InterMarketValue()
	assert.False(t, ok)
}

func TestRestoreCosts_RejectsRenamedGood(t *testing.T) {
	catalog := newStandardCatalog(t)
	water := lookup(t, catalog, goods.Water)
	states := []goods.CostState{{GoodID: water.ID(), Name: "brine", Cost: 999}}

	err := catalog.RestoreCosts(states)

	assert.ErrorIs(t, err, goods.ErrInvalidDefinition)
	assert.NotEqual(t, 999.0, water.CostOutput())
}
