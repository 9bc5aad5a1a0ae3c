package helpers

import (
	"testing"

	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/settlement"
)

// TradingPairProfiles returns two neighbouring settlements: alpha owns a
// cargo rover and a surplus of water, beta is short of water
func TradingPairProfiles() []settlement.Profile {
	return []settlement.Profile{
		{
			ID: "alpha", Name: "Alpha Base", Phi: 1.0, Theta: 0.5, Citizens: 12, Objective: "TRADE_CENTER",
			Resources: map[string]float64{goods.Water: 9000, goods.Oxygen: 2000, goods.Methanol: 3000},
			Items:     map[string]int{"steel sheet": 400, goods.Barrel: 40, goods.GasCanister: 40},
			Vehicles:  map[string]int{"cargo rover": 1},
		},
		{
			ID: "beta", Name: "Beta Outpost", Phi: 1.02, Theta: 0.52, Citizens: 20,
			Resources: map[string]float64{goods.Water: 200, goods.Food: 3000},
			Items:     map[string]int{"valve": 200, goods.Bag: 60},
		},
	}
}

// NewTestEngine builds an engine at time zero over the standard catalog
func NewTestEngine(t *testing.T, profiles []settlement.Profile, cfg economy.Config) *economy.Engine {
	t.Helper()
	catalog, err := goods.NewStandardCatalog()
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	engine, err := economy.NewEngine(catalog, 0, profiles, cfg)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	return engine
}
