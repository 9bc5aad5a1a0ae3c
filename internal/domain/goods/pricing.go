package goods

import "math"

// pricers is the per-category price table. held is the settlement's stored
// quantity (kg for amount resources, count otherwise).
var pricers = map[Category]func(g *Good, value, held float64) float64{
	CategoryAmountResource: resourcePrice,
	CategoryItemResource:   partPrice,
	CategoryEquipment:      unitPrice,
	CategoryContainer:      unitPrice,
	CategoryBin:            unitPrice,
	CategoryVehicle:        unitPrice,
	CategoryRobot:          unitPrice,
}

// Price converts a value point into a price for a settlement holding held units
func Price(g *Good, value, held float64) float64 {
	fn, ok := pricers[g.category]
	if !ok {
		return 0
	}
	return fn(g, math.Max(0, value), math.Max(0, held))
}

func resourcePrice(g *Good, value, held float64) float64 {
	totalMass := math.Round(held*100) / 100
	factor := 1.5 / (0.5 + math.Log(totalMass+1))
	return g.CostOutput() * (1 + 2*factor*math.Log(value+1))
}

func partPrice(g *Good, value, held float64) float64 {
	factor := 1.2 * math.Log(g.mass+1) / (1.2 + math.Log(held+1))
	return g.CostOutput() * (1 + 5*factor*math.Log(math.Sqrt(value)/2+1))
}

func unitPrice(g *Good, value, _ float64) float64 {
	return g.CostOutput() * (1 + math.Log(value+1))
}
