package market_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
)

func TestNewValueRecord(t *testing.T) {
	// Arrange
	e := market.Event{Type: market.EventValueChanged, SettlementID: "alpha", GoodID: 3, OldValue: 40, NewValue: 50, At: 120}

	// Act
	r, err := market.NewValueRecord(e, 12, 0.5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alpha", r.SettlementID())
	assert.Equal(t, 3, r.GoodID())
	assert.InDelta(t, 25.0, r.ChangePercent(), 1e-9)
	assert.EqualValues(t, 120, r.RecordedAt())
}

func TestNewValueRecord_Rejects(t *testing.T) {
	_, err := market.NewValueRecord(market.Event{NewValue: 1}, 0, 0)
	assert.ErrorIs(t, err, market.ErrInvalidSettlementID)

	_, err = market.NewValueRecord(market.Event{SettlementID: "alpha"}, 0, 0)
	assert.ErrorIs(t, err, market.ErrInvalidValuePoint)
}

func TestValueRecord_FirstValuationHasNoChange(t *testing.T) {
	r, err := market.NewValueRecordWithID(7, market.Event{SettlementID: "alpha", NewValue: 5}, 1, 1)

	require.NoError(t, err)
	assert.Equal(t, 7, r.ID())
	assert.Equal(t, 0.0, r.ChangePercent())
}
