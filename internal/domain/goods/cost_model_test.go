package goods_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

func TestCostModifier_ByCategoryAndType(t *testing.T) {
	catalog := newStandardCatalog(t)

	tests := []struct {
		name     string
		expected float64
	}{
		{goods.Oxygen, 0.5},
		{goods.Food, 0.5},
		{"soybean", 0.1},
		{"tofu", 0.05},
		{goods.Regolith, 0.02},
		{"hematite", 0.3},
		{"olivine", 0.3},
		{"basalt", 5},
		{goods.ToxicWaste, 0.0001},
		{goods.Methane, 0.3},
		{goods.Methanol, 0.4},
		{goods.CarbonMonoxide, 0.05},
		{goods.Ice, 0.5},
		{"electrical wire", 0.005},
		{"battery", 5},
		{"rover wheel", 3},
		{"microcontroller", 0.5},
		{"spectrometer", 1},
		{"stack", 8},
		{"fuel cell", 1},
		{"valve", 1.1},
		{goods.Barrel, 0.1},
		{"crate", 0.1},
		{"eva suit", 2},
		{"cargo rover", 2},
		{"repairbot", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, lookup(t, catalog, tt.name).CostModifier(), 1e-12)
		})
	}
}

func TestCostOutput_WithoutProcessesIsScaledModifier(t *testing.T) {
	catalog := newStandardCatalog(t)

	regolith := lookup(t, catalog, goods.Regolith)

	assert.InDelta(t, 0.03, regolith.CostOutput(), 1e-12)
}

func TestCostOutput_WeighsPartOutputsByMass(t *testing.T) {
	catalog := newStandardCatalog(t)

	sheet := lookup(t, catalog, "steel sheet")
	f := sheet.Factors()

	// one sheet of 3 kg per run: fraction = 1/(1*(1+3))
	assert.InDelta(t, 25, f.LaborTime, 1e-9)
	assert.InDelta(t, 50, f.ProcessTime, 1e-9)
	assert.InDelta(t, 0.25, f.Power, 1e-9)
	assert.InDelta(t, 0.5, f.Skill, 1e-9)
	assert.InDelta(t, 0.5, f.Tech, 1e-9)
	expected := 1.11 * (1 + 25.0/150 + 50.0/500 + 0.25 + 0.5 + 0.25)
	assert.InDelta(t, expected, sheet.CostOutput(), 1e-9)
}

func TestCostOutput_MeansManufacturingAndFoodProduction(t *testing.T) {
	catalog := newStandardCatalog(t)

	food := lookup(t, catalog, goods.Food)
	f := food.Factors()

	// manufacturing: fraction 1/0.5 -> labor 200, tech 6
	// food production: fraction 1/1.5 -> labor 13.33, tech 0
	assert.InDelta(t, (200+20.0/1.5)/2, f.LaborTime, 1e-9)
	assert.InDelta(t, 6, f.Tech, 1e-9, "a factor only one family supplies is taken as is")
}

func TestCostOutput_ComputedOnceUntilInvalidated(t *testing.T) {
	catalog := newStandardCatalog(t)
	wire := lookup(t, catalog, "electrical wire")
	require.Equal(t, 1, wire.CostEvaluations(), "catalog computes every cost eagerly")

	first := wire.CostOutput()
	second := wire.CostOutput()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, wire.CostEvaluations())

	wire.InvalidateCost()
	third := wire.CostOutput()

	assert.Equal(t, 2, wire.CostEvaluations())
	assert.InDelta(t, first, third, 1e-12)
}

func TestAdjustInterMarketValue_DriftsTowardBand(t *testing.T) {
	catalog := newStandardCatalog(t)
	model := catalog.CostModel()
	g := lookup(t, catalog, goods.Water)

	model.AdjustInterMarketValue(g)
	_, set := g.InterMarketValue()
	assert.False(t, set, "an unset value stays unset")

	tests := []struct {
		start, expected float64
	}{
		{2000, 1900},
		{0.5, 0.525},
		{500, 500},
		{1000, 1000},
		{1, 1},
	}
	for _, tt := range tests {
		g.SetInterMarketValue(tt.start)
		model.AdjustInterMarketValue(g)
		v, _ := g.InterMarketValue()
		assert.InDelta(t, tt.expected, v, 1e-9)
	}
}

func TestPrice_PerCategory(t *testing.T) {
	catalog := newStandardCatalog(t)

	regolith := lookup(t, catalog, goods.Regolith)
	suit := lookup(t, catalog, "eva suit")
	valve := lookup(t, catalog, "valve")

	// empty store: factor = 1.5/0.5
	assert.InDelta(t, regolith.CostOutput()*(1+2*3*math.Log(11)), goods.Price(regolith, 10, 0), 1e-9)
	assert.InDelta(t, suit.CostOutput()*2, goods.Price(suit, math.E-1, 5), 1e-9)

	factor := 1.2 * math.Log(0.5+1) / (1.2 + math.Log(4+1))
	assert.InDelta(t, valve.CostOutput()*(1+5*factor*math.Log(math.Sqrt(16)/2+1)), goods.Price(valve, 16, 4), 1e-9)
}

func TestStaticProcessTable_Queries(t *testing.T) {
	table, err := goods.NewStaticProcessTable(goods.StandardProcesses())
	require.NoError(t, err)

	producers := table.Producing(goods.ProcessManufacturing, "STEEL INGOT")
	lowTech := table.UpToTech(goods.ProcessFoodProduction, 0)

	require.Len(t, producers, 1)
	assert.Equal(t, "smelt hematite", producers[0].Name)
	require.Len(t, lowTech, 1)
	assert.Equal(t, "cook soybean ration", lowTech[0].Name)
}

func TestStaticProcessTable_RejectsProcessWithoutOutputs(t *testing.T) {
	_, err := goods.NewStaticProcessTable([]goods.Process{{Name: "nothing", Kind: goods.ProcessManufacturing}})

	assert.ErrorIs(t, err, goods.ErrInvalidProcess)
}
