package goods

import "strings"

// memo is a lazily computed value with an explicit unset state
type memo struct {
	value float64
	set   bool
}

func (m *memo) get() (float64, bool) {
	return m.value, m.set
}

func (m *memo) store(v float64) {
	m.value = v
	m.set = true
}

func (m *memo) reset() {
	m.value = 0
	m.set = false
}

// ProductionFactors are the process inputs averaged over every process that yields a good
type ProductionFactors struct {
	LaborTime   float64
	Power       float64
	ProcessTime float64
	Skill       float64
	Tech        float64
}

// Good is the catalog descriptor of one tradeable entity.
// Identity, category and mass never change after the catalog is built.
// Cost fields are computed once and memoized; the inter-market value
// is shared by every settlement in the run.
type Good struct {
	id       int
	name     string
	category Category
	goodType GoodType
	mass     float64

	// amount resources
	phase       Phase
	lifeSupport bool
	edible      bool

	// containers and bins
	capacity float64
	holds    Phase

	vehicle *VehicleDefinition

	model *CostModel

	factors         ProductionFactors
	factorsSet      bool
	costModifier    memo
	adjustedCost    memo
	costEvaluations int

	interMarket memo
}

func (g *Good) ID() int {
	return g.id
}

func (g *Good) Name() string {
	return g.name
}

func (g *Good) Category() Category {
	return g.category
}

func (g *Good) Type() GoodType {
	return g.goodType
}

// MassPerItem returns kg per unit (1 for amount resources)
func (g *Good) MassPerItem() float64 {
	return g.mass
}

// Phase returns the physical state of an amount resource
func (g *Good) Phase() Phase {
	return g.phase
}

func (g *Good) IsLifeSupport() bool {
	return g.lifeSupport
}

func (g *Good) IsEdible() bool {
	return g.edible
}

// Capacity returns the kg a container or bin holds
func (g *Good) Capacity() float64 {
	return g.capacity
}

// Holds returns the phase a container is built for
func (g *Good) Holds() Phase {
	return g.holds
}

// Vehicle returns the vehicle spec of a vehicle good
func (g *Good) Vehicle() (VehicleDefinition, bool) {
	if g.vehicle == nil {
		return VehicleDefinition{}, false
	}
	return *g.vehicle, true
}

// Factors returns the averaged production factors
func (g *Good) Factors() ProductionFactors {
	if !g.factorsSet && g.model != nil {
		g.factors = g.model.ComputeBaseOutputCost(g)
		g.factorsSet = true
	}
	return g.factors
}

// CostModifier returns the category-specific cost modifier
func (g *Good) CostModifier() float64 {
	if v, ok := g.costModifier.get(); ok {
		return v
	}
	v := computeCostModifier(g)
	g.costModifier.store(v)
	return v
}

// CostOutput returns the adjusted production cost, computing it on first use
func (g *Good) CostOutput() float64 {
	if v, ok := g.adjustedCost.get(); ok {
		return v
	}
	v := adjustedCost(g.CostModifier(), g.Factors())
	g.adjustedCost.store(v)
	g.costEvaluations++
	return v
}

// InvalidateCost clears every memoized cost field so the next read recomputes them
func (g *Good) InvalidateCost() {
	g.factorsSet = false
	g.factors = ProductionFactors{}
	g.costModifier.reset()
	g.adjustedCost.reset()
}

// InterMarketValue returns the shared cross-settlement reference value, if set
func (g *Good) InterMarketValue() (float64, bool) {
	return g.interMarket.get()
}

// SetInterMarketValue replaces the shared reference value
func (g *Good) SetInterMarketValue(v float64) {
	g.interMarket.store(v)
}

// ClearInterMarketValue returns the good to its startup state
func (g *Good) ClearInterMarketValue() {
	g.interMarket.reset()
}

// RestoreCost installs previously computed cost fields, e.g. from a snapshot
func (g *Good) RestoreCost(factors ProductionFactors, modifier, cost float64) {
	g.factors = factors
	g.factorsSet = true
	g.costModifier.store(modifier)
	g.adjustedCost.store(cost)
}

func (g *Good) String() string {
	return g.name
}

// HasNameFragment reports whether the lower-cased name contains fragment
func (g *Good) HasNameFragment(fragment string) bool {
	return strings.Contains(normalizeName(g.name), fragment)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
