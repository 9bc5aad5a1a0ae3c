package goods

// Divisors applied to each averaged production factor
const (
	LaborFactor       = 150.0
	ProcessTimeFactor = 500.0
	PowerFactor       = 1.0
	SkillFactor       = 1.0
	TechFactor        = 2.0
)

// Inter-market drift band
const (
	interMarketDeflateAbove = 1000.0
	interMarketInflateBelow = 1.0
	interMarketDeflateRate  = 0.95
	interMarketInflateRate  = 1.05
)

// CostModel derives production cost from the process tables.
//
// Results are memoized on each Good; the model itself is stateless
// apart from its references to the process data and part masses.
type CostModel struct {
	processes ProcessTable
	partMass  func(name string) (float64, bool)
}

// NewCostModel creates a cost model. partMass resolves the per-item mass of
// part outputs and may be nil, in which case part weights fall back to 1.
func NewCostModel(processes ProcessTable, partMass func(name string) (float64, bool)) *CostModel {
	return &CostModel{
		processes: processes,
		partMass:  partMass,
	}
}

// ComputeBaseOutputCost averages labor, power, process time, skill and tech
// over every manufacturing and food-production process yielding the good.
// Each process contributes in proportion to the good's share of its outputs.
// When both process families contribute a factor, the two averages are meaned.
func (m *CostModel) ComputeBaseOutputCost(g *Good) ProductionFactors {
	if m == nil || m.processes == nil {
		return ProductionFactors{}
	}

	manufacturing := m.averageFactors(g, m.processes.Producing(ProcessManufacturing, g.name))
	food := m.averageFactors(g, m.processes.Producing(ProcessFoodProduction, g.name))

	return ProductionFactors{
		LaborTime:   meanOfPresent(manufacturing.LaborTime, food.LaborTime),
		Power:       meanOfPresent(manufacturing.Power, food.Power),
		ProcessTime: meanOfPresent(manufacturing.ProcessTime, food.ProcessTime),
		Skill:       meanOfPresent(manufacturing.Skill, food.Skill),
		Tech:        meanOfPresent(manufacturing.Tech, food.Tech),
	}
}

func (m *CostModel) averageFactors(g *Good, processes []Process) ProductionFactors {
	var sum ProductionFactors
	if len(processes) == 0 {
		return sum
	}

	key := normalizeName(g.name)
	for _, p := range processes {
		goodAmount, otherAmount := 0.0, 0.0
		goodWeight, otherWeight := 1.0, 1.0

		for _, out := range p.Outputs {
			if normalizeName(out.Name) == key {
				goodAmount += out.Amount
				if out.Kind == ItemPart {
					goodWeight += m.massOf(out.Name)
				}
			} else {
				otherAmount += out.Amount
				if out.Kind == ItemPart {
					otherWeight += m.massOf(out.Name)
				}
			}
		}

		denominator := goodAmount*goodWeight + otherAmount*otherWeight
		if denominator <= 0 {
			continue
		}
		fraction := 1 / denominator

		sum.LaborTime += p.WorkTime * fraction
		sum.Power += p.Power * fraction
		sum.ProcessTime += p.ProcessTime * fraction
		sum.Skill += float64(p.Skill) * fraction
		sum.Tech += float64(p.Tech) * fraction
	}

	n := float64(len(processes))
	return ProductionFactors{
		LaborTime:   sum.LaborTime / n,
		Power:       sum.Power / n,
		ProcessTime: sum.ProcessTime / n,
		Skill:       sum.Skill / n,
		Tech:        sum.Tech / n,
	}
}

func (m *CostModel) massOf(name string) float64 {
	if m.partMass == nil {
		return 0
	}
	mass, ok := m.partMass(name)
	if !ok {
		return 0
	}
	return mass
}

// ComputeCost fills every memoized cost field of the good
func (m *CostModel) ComputeCost(g *Good) float64 {
	g.model = m
	g.Factors()
	g.CostModifier()
	return g.CostOutput()
}

// AdjustInterMarketValue nudges the shared reference value back toward the
// [1, 1000] band by 5% per call. Values inside the band are left alone.
func (m *CostModel) AdjustInterMarketValue(g *Good) {
	v, ok := g.InterMarketValue()
	if !ok {
		return
	}
	switch {
	case v > interMarketDeflateAbove:
		g.SetInterMarketValue(v * interMarketDeflateRate)
	case v < interMarketInflateBelow:
		g.SetInterMarketValue(v * interMarketInflateRate)
	}
}

func adjustedCost(modifier float64, f ProductionFactors) float64 {
	return (0.01 + modifier) * (1 +
		f.LaborTime/LaborFactor +
		f.ProcessTime/ProcessTimeFactor +
		f.Power/PowerFactor +
		f.Skill/SkillFactor +
		f.Tech/TechFactor)
}

func meanOfPresent(a, b float64) float64 {
	switch {
	case a == 0:
		return b
	case b == 0:
		return a
	default:
		return (a + b) / 2
	}
}
