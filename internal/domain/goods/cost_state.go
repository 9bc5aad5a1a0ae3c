package goods

import "fmt"

// CostState is the persistable cost data of one good
type CostState struct {
	GoodID      int               `json:"good_id"`
	Name        string            `json:"name"`
	Factors     ProductionFactors `json:"factors"`
	Modifier    float64           `json:"modifier"`
	Cost        float64           `json:"cost"`
	InterMarket *float64          `json:"inter_market,omitempty"`
}

// CostStates computes (if needed) and returns the cost state of every good, by ID
func (c *Catalog) CostStates() []CostState {
	states := make([]CostState, 0, c.Len())
	for _, g := range c.All() {
		s := CostState{
			GoodID:   g.ID(),
			Name:     g.Name(),
			Factors:  g.Factors(),
			Modifier: g.CostModifier(),
			Cost:     g.CostOutput(),
		}
		if v, ok := g.InterMarketValue(); ok {
			s.InterMarket = &v
		}
		states = append(states, s)
	}
	return states
}

// RestoreCosts installs saved cost states. A state whose ID and name no
// longer match the catalog is rejected before anything is changed.
func (c *Catalog) RestoreCosts(states []CostState) error {
	for _, s := range states {
		g, err := c.Lookup(s.GoodID)
		if err != nil {
			return err
		}
		if s.Name != "" && normalizeName(s.Name) != normalizeName(g.Name()) {
			return fmt.Errorf("%w: good %d is %s, saved as %s", ErrInvalidDefinition, s.GoodID, g.Name(), s.Name)
		}
	}

	for _, s := range states {
		g, _ := c.Lookup(s.GoodID)
		g.RestoreCost(s.Factors, s.Modifier, s.Cost)
		if s.InterMarket != nil {
			g.SetInterMarketValue(*s.InterMarket)
		} else {
			g.ClearInterMarketValue()
		}
	}
	return nil
}
