package goods

import "context"

// CostRepository persists the per-good cost fields and inter-market values of a run
type CostRepository interface {
	// SaveCosts upserts the cost state of every listed good
	SaveCosts(ctx context.Context, states []CostState) error

	// LoadCosts returns every saved cost state
	LoadCosts(ctx context.Context) ([]CostState, error)
}
