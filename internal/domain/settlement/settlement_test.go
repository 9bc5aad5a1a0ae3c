package settlement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/settlement"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

type fixture struct {
	catalog  *goods.Catalog
	clock    *shared.MockClock
	registry *settlement.Registry
	env      *market.Environment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := goods.NewStandardCatalog()
	require.NoError(t, err)
	f := &fixture{catalog: catalog, clock: shared.NewMockClock(0), registry: settlement.NewRegistry()}
	f.env = &market.Environment{Catalog: catalog, Clock: f.clock, Peers: f.registry}
	return f
}

func (f *fixture) add(t *testing.T, p settlement.Profile) *settlement.Settlement {
	t.Helper()
	s, err := settlement.New(p, f.env)
	require.NoError(t, err)
	require.NoError(t, f.registry.Add(s))
	return s
}

func (f *fixture) id(t *testing.T, name string) int {
	t.Helper()
	g, err := f.catalog.LookupByName(name)
	require.NoError(t, err)
	return g.ID()
}

func TestNew_StocksFromProfile(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	s := f.add(t, settlement.Profile{
		ID:        "schiaparelli",
		Phi:       1.2,
		Theta:     0.4,
		Objective: "TRADE_CENTER",
		Citizens:  12,
		Jobs:      map[string]int{"trader": 2, "AREOLOGIST": 1},
		Tech:      map[string]int{"manufacturing": 3},
		Resources: map[string]float64{goods.Water: 5000, goods.Methanol: 800},
		Items:     map[string]int{"steel sheet": 40, goods.Barrel: 10},
		InUse:     map[string]int{goods.Barrel: 4},
		Vehicles:  map[string]int{"explorer rover": 2},
		Disabled:  []string{"delivery"},
	})

	// Assert
	assert.Equal(t, "schiaparelli", s.Name())
	assert.Equal(t, market.ObjectiveTradeCenter, s.Objective())
	assert.Equal(t, 2, s.JobCount(market.JobTrader))
	assert.Equal(t, 3, s.TechLevel(goods.ProcessManufacturing))
	assert.Equal(t, -1, s.TechLevel(goods.ProcessFoodProduction))
	assert.Equal(t, 5000.0, s.AmountStored(f.id(t, goods.Water)))
	assert.Equal(t, 40, s.ItemCount(f.id(t, "steel sheet")))
	assert.Equal(t, 4, s.InUseCount(f.id(t, goods.Barrel)))
	total, idle := s.VehicleCount(f.id(t, "explorer rover"))
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, idle)
	assert.Equal(t, 1800.0, s.FuelCapacity(f.id(t, goods.Methanol)))
	assert.Zero(t, s.FuelCapacity(f.id(t, goods.Water)))
	assert.True(t, s.MissionEnabled(commerce.MissionTrade))
	assert.False(t, s.MissionEnabled(commerce.MissionDelivery))
	assert.Equal(t, "schiaparelli", s.Market().SettlementID())
}

func TestNew_RejectsBadProfiles(t *testing.T) {
	tests := []struct {
		name    string
		profile settlement.Profile
	}{
		{"missing id", settlement.Profile{}},
		{"polar angle out of range", settlement.Profile{ID: "x", Phi: 4}},
		{"unknown objective", settlement.Profile{ID: "x", Objective: "SPACEPORT"}},
		{"unknown good", settlement.Profile{ID: "x", Resources: map[string]float64{"unobtainium": 1}}},
		{"part stored as resource", settlement.Profile{ID: "x", Resources: map[string]float64{"steel sheet": 1}}},
		{"resource counted as item", settlement.Profile{ID: "x", Items: map[string]int{goods.Water: 1}}},
		{"unknown mission type", settlement.Profile{ID: "x", Disabled: []string{"mining"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := settlement.New(tt.profile, f.env)

			assert.Error(t, err)
		})
	}
}

func TestNew_RegistersEssentialLimits(t *testing.T) {
	f := newFixture(t)

	s := f.add(t, settlement.Profile{
		ID:         "x",
		Essentials: map[string]market.EssentialLimit{goods.Oxygen: {Reserve: 10, Max: 500}},
	})

	assert.Equal(t, 1, s.Market().ResourceReviewDue())
}

func TestRegistry_PeersAndSettlements(t *testing.T) {
	f := newFixture(t)
	f.add(t, settlement.Profile{ID: "gamma"})
	f.add(t, settlement.Profile{ID: "alpha"})
	f.add(t, settlement.Profile{ID: "beta"})

	peers := f.registry.Peers("beta")
	all := f.registry.Settlements()

	require.Len(t, peers, 2)
	assert.Equal(t, "alpha", peers[0].ID())
	assert.Equal(t, "gamma", peers[1].ID())
	require.Len(t, all, 3)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, f.registry.IDs())

	_, err := f.registry.Get("delta")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	dup, err := settlement.New(settlement.Profile{ID: "alpha"}, f.env)
	require.NoError(t, err)
	assert.ErrorIs(t, f.registry.Add(dup), settlement.ErrDuplicateSettlement)
}

func TestTransfer_MovesWholeLoadOrNothing(t *testing.T) {
	// Arrange
	f := newFixture(t)
	water, steel, barrel, rover := f.id(t, goods.Water), f.id(t, "steel sheet"), f.id(t, goods.Barrel), f.id(t, "cargo rover")
	from := f.add(t, settlement.Profile{
		ID:        "from",
		Resources: map[string]float64{goods.Water: 1000},
		Items:     map[string]int{"steel sheet": 5, goods.Barrel: 3},
		InUse:     map[string]int{goods.Barrel: 1},
		Vehicles:  map[string]int{"cargo rover": 1},
	})
	to := f.add(t, settlement.Profile{ID: "to"})

	// Act
	short := settlement.Transfer(f.catalog, from, to, commerce.Load{water: 400, barrel: 3})
	err := settlement.Transfer(f.catalog, from, to, commerce.Load{water: 400, steel: 5, barrel: 2, rover: 1})

	// Assert
	assert.ErrorIs(t, short, settlement.ErrInsufficientStock)
	require.NoError(t, err)
	assert.Equal(t, 600.0, from.AmountStored(water))
	assert.Equal(t, 400.0, to.AmountStored(water))
	assert.Equal(t, 0, from.ItemCount(steel))
	assert.Equal(t, 5, to.ItemCount(steel))
	assert.Equal(t, 1, from.ItemCount(barrel))
	assert.Equal(t, 2, to.ItemCount(barrel))
	total, _ := from.VehicleCount(rover)
	assert.Equal(t, 0, total)
	_, idle := to.VehicleCount(rover)
	assert.Equal(t, 1, idle)
}

func TestInventory_DispatchAndReturn(t *testing.T) {
	inv := settlement.NewInventory()
	inv.AddVehicles(7, 1)

	require.NoError(t, inv.Dispatch(7))
	total, idle := inv.VehicleCount(7)
	assert.Equal(t, 1, total)
	assert.Equal(t, 0, idle)
	assert.ErrorIs(t, inv.Dispatch(7), settlement.ErrInsufficientStock)

	inv.Return(7)
	inv.Return(7)
	_, idle = inv.VehicleCount(7)
	assert.Equal(t, 1, idle)
}

func TestVehicle_RangeFollowsFuel(t *testing.T) {
	f := newFixture(t)
	s := f.add(t, settlement.Profile{ID: "x", Resources: map[string]float64{goods.Methanol: 500}})
	g, err := f.catalog.LookupByName("explorer rover")
	require.NoError(t, err)
	spec, _ := g.Vehicle()

	v, err := settlement.NewVehicle(spec, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, 250.0, v.Range(commerce.MissionTrade))

	moved, err := v.Refuel(s)
	require.NoError(t, err)
	assert.Equal(t, 500.0, moved)
	assert.Equal(t, 600.0, v.Fuel())
	assert.Zero(t, s.AmountStored(f.id(t, goods.Methanol)))

	v.Consume(500)
	assert.Equal(t, 400.0, v.Fuel())
	assert.True(t, v.CanTravel(900, 0.1))
	assert.False(t, v.CanTravel(1000, 0.1))
}
