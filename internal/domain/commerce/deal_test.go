package commerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

func TestBestDeal_PicksHighestProfitAndPublishes(t *testing.T) {
	// Arrange
	w := newWorld(t, false, "alpha", "beta", "gamma")
	away, err := shared.NewCoordinates(0.3, 0)
	require.NoError(t, err)
	w.site("gamma").coords = away
	w.tick()

	var published []commerce.DealComputed
	w.finder.Subscribe(func(e commerce.DealComputed) { published = append(published, e) })

	// Act
	deal, err := w.finder.BestDeal(w.site("alpha"), commerce.MissionTrade, hauler())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "beta", deal.Buyer())
	assert.Equal(t, "alpha", deal.Seller())
	assert.Equal(t, commerce.MissionTrade, deal.Mission())
	require.Len(t, published, 1)
	assert.Equal(t, deal.ID(), published[0].Deal.ID())
	assert.False(t, deal.ID().IsZero())
}

func TestGetDeal_ReusesDealUntilOlderThanFrequency(t *testing.T) {
	w := newWorld(t, false, "alpha", "beta")
	w.tick()
	alpha := w.site("alpha")

	first, err := w.finder.GetDeal(alpha, commerce.MissionTrade, hauler())
	require.NoError(t, err)

	w.clock.Advance(1000)
	same, err := w.finder.GetDeal(alpha, commerce.MissionTrade, hauler())
	require.NoError(t, err)
	assert.Equal(t, first.ID(), same.ID())

	w.clock.Advance(1)
	fresh, err := w.finder.GetDeal(alpha, commerce.MissionTrade, hauler())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), fresh.ID())
	assert.Equal(t, shared.SimTime(1001), fresh.CreatedAt())
}

func TestWatch_ShortlistRefreshDropsCachedDeals(t *testing.T) {
	w := newWorld(t, false, "alpha", "beta")
	w.tick()
	alpha := w.site("alpha")
	stop := w.finder.Watch(alpha)

	_, err := w.finder.GetDeal(alpha, commerce.MissionTrade, hauler())
	require.NoError(t, err)
	_, cached := w.finder.CachedDeal("alpha", commerce.MissionTrade)
	require.True(t, cached)

	alpha.ledger.RefreshShortlists(alpha)
	_, cached = w.finder.CachedDeal("alpha", commerce.MissionTrade)
	assert.False(t, cached)

	stop()
	_, err = w.finder.GetDeal(alpha, commerce.MissionTrade, hauler())
	require.NoError(t, err)
	alpha.ledger.RefreshShortlists(alpha)
	_, cached = w.finder.CachedDeal("alpha", commerce.MissionTrade)
	assert.True(t, cached)
}

func TestNegotiateDeal_CreditsSaleAndDebitsExchange(t *testing.T) {
	// Arrange
	w := newWorld(t, true, "alpha", "beta")
	alpha, beta := w.site("alpha"), w.site("beta")
	steel := w.good(t, "steel sheet")
	alpha.items[steel.ID()] = 1000
	beta.ledger.SetDemand(steel.ID(), 5000)
	beta.ledger.CalculateBuyList(beta)
	sold := commerce.Load{steel.ID(): 5}

	soldCredit, err := w.finder.DetermineLoadCredit(sold, alpha, true)
	require.NoError(t, err)

	// Act
	exchange, err := w.finder.NegotiateDeal(alpha, beta, hauler(), 1.0, sold)

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, exchange.Load)
	exchangeCredit, err := w.finder.DetermineLoadCredit(exchange.Load, beta, true)
	require.NoError(t, err)
	assert.InDelta(t, soldCredit-exchangeCredit, w.credit.GetCredit("beta", "alpha"), 1e-6)
	assert.Equal(t, 0.0, w.credit.GetCredit("alpha", "beta"))
}

func TestNegotiateDeal_DefaultCreditPolicyOnlyBroadcasts(t *testing.T) {
	w := newWorld(t, false, "alpha", "beta")
	alpha, beta := w.site("alpha"), w.site("beta")
	steel := w.good(t, "steel sheet")
	alpha.items[steel.ID()] = 10
	var events []credit.Event
	w.credit.Subscribe(func(e credit.Event) { events = append(events, e) })

	exchange, err := w.finder.NegotiateDeal(alpha, beta, hauler(), 2.0, commerce.Load{steel.ID(): 1})

	require.NoError(t, err)
	assert.Empty(t, exchange.Load)
	assert.Equal(t, 0.0, w.credit.GetCredit("beta", "alpha"))
	require.Len(t, events, 2)
	assert.Greater(t, events[0].Amount, 0.0)
	assert.Equal(t, "beta", events[0].From)
}

func TestNegotiateDeal_RejectsNonPositiveModifier(t *testing.T) {
	w := newWorld(t, false, "alpha", "beta")

	_, err := w.finder.NegotiateDeal(w.site("alpha"), w.site("beta"), hauler(), 0, commerce.Load{})

	assert.ErrorIs(t, err, commerce.ErrInvalidTradeModifier)
}

func TestDealID_Parse(t *testing.T) {
	id := commerce.NewDealID()

	parsed, err := commerce.ParseDealID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = commerce.ParseDealID("")
	assert.Error(t, err)
	_, err = commerce.ParseDealID("not-a-uuid")
	assert.Error(t, err)
}

func TestParseMissionType(t *testing.T) {
	got, err := commerce.ParseMissionType("DELIVERY")
	require.NoError(t, err)
	assert.Equal(t, commerce.MissionDelivery, got)

	_, err = commerce.ParseMissionType("MINING")
	assert.ErrorIs(t, err, commerce.ErrInvalidMissionType)
}
