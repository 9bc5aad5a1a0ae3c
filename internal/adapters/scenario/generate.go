package scenario

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/settlement"
)

var baseNames = []string{
	"Schiaparelli", "Gale", "Jezero", "Elysium", "Tharsis", "Utopia",
	"Hellas", "Arcadia", "Meridiani", "Chryse", "Isidis", "Noctis",
}

var objectives = []market.Objective{
	market.ObjectiveTradeCenter,
	market.ObjectiveCropFarm,
	market.ObjectiveManufacturingDepot,
	market.ObjectiveResearchCampus,
	market.ObjectiveTransportationHub,
	market.ObjectiveBuildersHaven,
	market.ObjectiveTourism,
}

// stock lines and their base abundance; noise scales each one per settlement
var resourceStock = []struct {
	name string
	base float64
}{
	{goods.Oxygen, 3000},
	{goods.Water, 6000},
	{goods.Food, 1500},
	{goods.Methanol, 2500},
	{goods.Methane, 1200},
	{goods.Ice, 4000},
	{goods.Regolith, 8000},
	{"hematite", 2000},
	{"polyethylene", 600},
	{"soybean", 800},
}

var itemStock = []struct {
	name string
	base int
}{
	{"steel sheet", 300},
	{"valve", 150},
	{"battery", 60},
	{"electrical wire", 500},
	{"rover wheel", 12},
	{goods.GasCanister, 40},
	{goods.Barrel, 40},
	{goods.Bag, 80},
	{"eva suit", 10},
}

// Generate builds a scenario of n settlements from seed. Settlements are
// spread along a band of latitude close enough for a cargo rover to reach
// its neighbours; noise decides their position jitter, population and
// stock abundance, so the same seed always yields the same document.
func Generate(seed int64, n int) (*Document, error) {
	if n < 2 {
		return nil, fmt.Errorf("scenario needs at least 2 settlements, got %d", n)
	}

	place := opensimplex.NewNormalized(seed)
	people := opensimplex.NewNormalized(seed + 1)
	abundance := opensimplex.NewNormalized(seed + 2)

	doc := &Document{
		Name:        fmt.Sprintf("generated-%d", seed),
		Seed:        seed,
		Settlements: make([]settlement.Profile, 0, n),
	}

	for i := 0; i < n; i++ {
		x := float64(i)

		phi := math.Pi/2 + 0.15*(octaveNoise(place, x, 0.5, 3, 0.7, 0.5)-0.5)
		theta := 0.12*x + 0.04*(place.Eval2(x, 7.3)-0.5)

		citizens := 6 + int(26*people.Eval2(x, 0.25))
		objective := objectives[int(people.Eval2(x, 3.1)*float64(len(objectives)))%len(objectives)]

		p := settlement.Profile{
			ID:          fmt.Sprintf("s%02d", i+1),
			Name:        fmt.Sprintf("%s %s", baseNames[i%len(baseNames)], suffix(i)),
			Phi:         phi,
			Theta:       theta,
			Objective:   string(objective),
			Citizens:    citizens,
			PowerValue:  0.5 + abundance.Eval2(x, 9.9),
			WaterRation: 0,
			Jobs: map[string]int{
				string(market.JobTrader):     1 + citizens/10,
				string(market.JobPilot):      1 + citizens/12,
				string(market.JobAreologist): citizens / 8,
				string(market.JobEngineer):   1 + citizens/6,
			},
			Tech: map[string]int{
				string(goods.ProcessManufacturing):  1 + int(4*abundance.Eval2(x, 11.1)),
				string(goods.ProcessFoodProduction): 1 + int(2*abundance.Eval2(x, 12.7)),
			},
			Resources: make(map[string]float64, len(resourceStock)),
			Items:     make(map[string]int, len(itemStock)),
			Vehicles:  map[string]int{"cargo rover": 1},
			Essentials: map[string]market.EssentialLimit{
				goods.Oxygen: {Reserve: 20, Max: 2000},
				goods.Water:  {Reserve: 40, Max: 4000},
				goods.Food:   {Reserve: 10, Max: 1000},
			},
		}
		if i%2 == 0 {
			p.Vehicles["explorer rover"] = 1
		}

		for j, r := range resourceStock {
			f := octaveNoise(abundance, x, float64(j)*1.7, 2, 0.9, 0.5)
			p.Resources[r.name] = math.Round(r.base * (0.1 + 1.9*f))
		}
		for j, it := range itemStock {
			f := octaveNoise(abundance, x+100, float64(j)*1.3, 2, 0.9, 0.5)
			p.Items[it.name] = int(float64(it.base) * (0.1 + 1.9*f))
		}

		doc.Settlements = append(doc.Settlements, p)
	}
	return doc, nil
}

// octaveNoise layers frequencies of normalized noise; the result stays in [0, 1]
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func suffix(i int) string {
	if i < len(baseNames) {
		return "Base"
	}
	return fmt.Sprintf("Base %d", i/len(baseNames)+1)
}
