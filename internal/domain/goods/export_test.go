package goods

// CostEvaluations exposes how many times the adjusted cost was computed
func (g *Good) CostEvaluations() int {
	return g.costEvaluations
}
