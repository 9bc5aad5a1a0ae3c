package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// barrenSite holds nothing and has nobody
type barrenSite struct{}

func (barrenSite) ID() string                         { return "barren" }
func (barrenSite) Coordinates() shared.Coordinates    { return shared.Coordinates{} }
func (barrenSite) Objective() Objective               { return ObjectiveNone }
func (barrenSite) Citizens() int                      { return 0 }
func (barrenSite) JobCount(Job) int                   { return 0 }
func (barrenSite) TechLevel(goods.ProcessKind) int    { return -1 }
func (barrenSite) FuelCapacity(int) float64           { return 0 }
func (barrenSite) PowerValue() float64                { return 0 }
func (barrenSite) WaterRationLevel() float64          { return 0 }
func (barrenSite) MaintenanceDemand(int) int          { return 0 }
func (barrenSite) AmountStored(int) float64           { return 0 }
func (barrenSite) ItemCount(int) int                  { return 0 }
func (barrenSite) InUseCount(int) int                 { return 0 }
func (barrenSite) VehicleCount(int) (total, idle int) { return 0, 0 }

func newTestLedger(t *testing.T) (*Ledger, *goods.Catalog) {
	t.Helper()
	catalog, err := goods.NewStandardCatalog()
	require.NoError(t, err)
	l, err := NewLedger("barren", &Environment{Catalog: catalog, Clock: &shared.MockClock{}})
	require.NoError(t, err)
	return l, catalog
}

func TestUpdateDeflationMap_BumpsOtherGoodsOnOvershoot(t *testing.T) {
	l, catalog := newTestLedger(t)
	oxygen, _ := catalog.LookupByName(goods.Oxygen)
	water, _ := catalog.LookupByName(goods.Water)
	valve, _ := catalog.LookupByName("valve")

	scaled := l.updateDeflationMap(oxygen, 20000, true)

	assert.InDelta(t, 20000*0.81, scaled, 1e-9)
	assert.Equal(t, 0, l.DeflationIndex(oxygen.ID()))
	assert.Equal(t, 2, l.DeflationIndex(water.ID()))
	assert.Equal(t, 1, l.DeflationIndex(valve.ID()))
}

func TestUpdateDeflationMap_UndershootChangesNothing(t *testing.T) {
	l, catalog := newTestLedger(t)
	oxygen, _ := catalog.LookupByName(goods.Oxygen)

	value := l.updateDeflationMap(oxygen, 0.001, false)

	assert.Equal(t, 0.001, value)
	for _, g := range catalog.All() {
		assert.Equal(t, 0, l.DeflationIndex(g.ID()))
	}
}

func TestCheckDeflation_CompoundsWithinFloorAndCeiling(t *testing.T) {
	l, catalog := newTestLedger(t)
	id := catalog.All()[0].ID()

	tests := []struct {
		name  string
		index int
		value float64
		want  float64
	}{
		{"deflates per step", 2, 100, 81},
		{"stops above the floor", 3, 12, 10.8},
		{"inflates per step", -2, 100, 121},
		{"stops below the ceiling", -2, 900, 990},
		{"no index leaves value", 0, 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.deflation[id] = tt.index

			got := l.checkDeflation(id, tt.value)

			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, 0, l.DeflationIndex(id))
		})
	}
}

func TestDeflationIndex_IsConsumedByNextTick(t *testing.T) {
	l, catalog := newTestLedger(t)
	oxygen, _ := catalog.LookupByName(goods.Oxygen)
	l.updateDeflationMap(oxygen, 20000, true)

	l.UpdateGoodValues(barrenSite{})

	for _, g := range catalog.All() {
		assert.Equal(t, 0, l.DeflationIndex(g.ID()), g.Name())
	}
}

func TestAdjustMarketValue_SeedsThenBlends(t *testing.T) {
	l, catalog := newTestLedger(t)
	water, _ := catalog.LookupByName(goods.Water)

	first := l.adjustMarketValue(water, 100)
	second := l.adjustMarketValue(water, 200)

	assert.Equal(t, 0.0, first)
	assert.InDelta(t, 10.0, second, 1e-9)
	v, ok := water.InterMarketValue()
	require.True(t, ok)
	assert.InDelta(t, 110.0, v, 1e-9)
}

func TestAdjustMarketValue_ClampsSeed(t *testing.T) {
	l, catalog := newTestLedger(t)
	water, _ := catalog.LookupByName(goods.Water)

	l.adjustMarketValue(water, 1e9)

	v, _ := water.InterMarketValue()
	assert.Equal(t, MaxFinalVP, v)
}

func TestComputeModifierAndLevel(t *testing.T) {
	assert.Equal(t, 150.0, computeModifier(BaseRepairPart, 1))
	assert.Equal(t, 75.0, computeModifier(BaseRepairPart, 0))
	assert.Equal(t, 1200.0, computeModifier(BaseRepairPart, 3))
	assert.Equal(t, 32*15.0, computeModifier(BaseMaintPart, 8))

	assert.Equal(t, 0, computeLevel(0.5))
	assert.Equal(t, 1, computeLevel(1))
	assert.Equal(t, 3, computeLevel(8))
	assert.Equal(t, 5, computeLevel(32))
}

func TestFlatten_TypeAndNameFactors(t *testing.T) {
	_, catalog := newTestLedger(t)
	lookup := func(name string) *goods.Good {
		g, err := catalog.LookupByName(name)
		require.NoError(t, err)
		return g
	}

	assert.InDelta(t, 4*0.5, resourceFlatten(lookup(goods.Oxygen)), 1e-12)
	assert.InDelta(t, 2*0.05, resourceFlatten(lookup(goods.Ice)), 1e-12)
	assert.InDelta(t, 1.1*0.5, resourceFlatten(lookup("olivine")), 1e-12)
	assert.InDelta(t, 4.2, wasteModifier(lookup(goods.FoodWaste)), 1e-12)
	assert.Equal(t, 1.0, wasteModifier(lookup(goods.Oxygen)))

	assert.InDelta(t, 0.01*0.5, partFlatten(lookup("electrical wire")), 1e-12)
	assert.InDelta(t, 0.25*0.5*0.025, partFlatten(lookup("steel sheet")), 1e-12)
	assert.InDelta(t, 0.25*0.5, partFlatten(lookup("valve")), 1e-12)
	assert.InDelta(t, 6*0.5, partFlatten(lookup("spectrometer")), 1e-12)
}

func TestCommerceTypeForObjective(t *testing.T) {
	_, catalog := newTestLedger(t)
	methanol, _ := catalog.LookupByName(goods.Methanol)
	wheel, _ := catalog.LookupByName("rover wheel")

	c, ok := resourceCommerceType(ObjectiveTransportationHub, methanol)
	assert.True(t, ok)
	assert.Equal(t, CommerceTransport, c)

	_, ok = resourceCommerceType(ObjectiveCropFarm, methanol)
	assert.False(t, ok)

	c, ok = partCommerceType(ObjectiveTourism, wheel)
	assert.True(t, ok)
	assert.Equal(t, CommerceTourism, c)
}
