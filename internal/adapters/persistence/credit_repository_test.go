package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/persistence"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/test/helpers"
)

func TestCreditRepository_SaveReplacesBalances(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCreditRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.SaveBalances(ctx, []credit.Balance{
		{From: "alpha", To: "gamma", Amount: 5},
	}))

	// Act
	err := repo.SaveBalances(ctx, []credit.Balance{
		{From: "beta", To: "alpha", Amount: -300},
		{From: "alpha", To: "beta", Amount: 300},
	})
	require.NoError(t, err)
	balances, err := repo.LoadBalances(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []credit.Balance{
		{From: "alpha", To: "beta", Amount: 300},
		{From: "beta", To: "alpha", Amount: -300},
	}, balances)
}

func TestCreditRepository_RejectsSelfBalance(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormCreditRepository(db)

	err := repo.SaveBalances(context.Background(), []credit.Balance{{From: "alpha", To: "alpha", Amount: 1}})

	assert.Error(t, err)
	balances, err := repo.LoadBalances(context.Background())
	require.NoError(t, err)
	assert.Empty(t, balances)
}
