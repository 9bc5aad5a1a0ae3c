package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/persistence"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
	"github.com/mars-sim/mars-sim-sub053/test/helpers"
)

func TestLedgerRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormLedgerRepository(db)
	state := &market.LedgerState{
		SettlementID:   "alpha",
		Values:         map[int]float64{1: 12.5, 2: 0.3},
		Demand:         map[int]float64{1: 40},
		Supply:         map[int]float64{1: 8},
		Deflation:      map[int]int{2: 3},
		TradeCache:     map[int]float64{1: 11},
		Factors:        map[market.CommerceType]float64{market.CommerceTrade: 1.2},
		RepairMod:      150,
		MaintenanceMod: 15,
		EVASuitMod:     1,
		Initialized:    true,
	}

	// Act
	err := repo.Save(context.Background(), state)
	require.NoError(t, err)
	loaded, err := repo.Load(context.Background(), "alpha")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestLedgerRepository_SaveOverwrites(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormLedgerRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &market.LedgerState{SettlementID: "alpha", RepairMod: 1}))

	err := repo.Save(ctx, &market.LedgerState{SettlementID: "alpha", RepairMod: 2, Initialized: true})

	require.NoError(t, err)
	loaded, err := repo.Load(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, 2.0, loaded.RepairMod)
	assert.True(t, loaded.Initialized)
}

func TestLedgerRepository_LoadMissing(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormLedgerRepository(db)

	_, err := repo.Load(context.Background(), "nowhere")

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
