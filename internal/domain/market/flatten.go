package market

import (
	"strings"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

// nameRule scales demand for goods whose name contains a fragment
type nameRule struct {
	fragment string
	factor   float64
}

// firstMatch returns the factor of the first rule matching g, or fallback
func firstMatch(g *goods.Good, rules []nameRule, fallback float64) float64 {
	for _, r := range rules {
		if g.HasNameFragment(r.fragment) {
			return r.factor
		}
	}
	return fallback
}

var resourceTypeFlatten = map[goods.GoodType]float64{
	goods.GoodTypeAnimal:     2,
	goods.GoodTypeChemical:   3,
	goods.GoodTypeCompound:   2,
	goods.GoodTypeCrop:       2,
	goods.GoodTypeDerived:    2,
	goods.GoodTypeElement:    4,
	goods.GoodTypeGemstone:   3,
	goods.GoodTypeInsect:     5,
	goods.GoodTypeInstrument: 5,
	goods.GoodTypeMineral:    1.1,
	goods.GoodTypeOre:        1.1,
	goods.GoodTypeOrganism:   2,
	goods.GoodTypeRegolith:   2,
	goods.GoodTypeRock:       1,
	goods.GoodTypeSoyBased:   0.5,
	goods.GoodTypeTissue:     4,
	goods.GoodTypeUtility:    10,
	goods.GoodTypeWaste:      0.15,
}

// Per-resource multipliers on top of the type factor, matched by exact name
var resourceNameFlatten = map[string]float64{
	goods.Acetylene:      0.025,
	goods.Sand:           1,
	goods.Ice:            0.05,
	goods.CarbonMonoxide: 0.09,
	goods.CarbonDioxide:  0.06,
	goods.Methane:        1.1,
	goods.Methanol:       0.9,
	goods.Water:          0.5,
	goods.Hydrogen:       0.025,
	goods.Oxygen:         0.5,
	"olivine":            0.5,
	"kamacite":           0.2,
	"sodium carbonate":   0.5,
	"iron powder":        0.005,
}

// resourceFlatten is the fixed demand scale of an amount resource
func resourceFlatten(g *goods.Good) float64 {
	mod, ok := resourceTypeFlatten[g.Type()]
	if !ok {
		mod = 1
	}
	if named, ok := resourceNameFlatten[nameKey(g)]; ok {
		mod *= named
	}
	return mod
}

var wasteModifiers = map[string]float64{
	goods.BrineWater: 0.04,
	goods.GreyWater:  1,
	goods.BlackWater: 0.5,
	goods.Leaves:     0.5,
	goods.Soil:       0.05,
	goods.FoodWaste:  4 * 1.05,
	goods.SolidWaste: 0.2,
	goods.ToxicWaste: 0.05,
	goods.CropWaste:  4 * 1.05,
	goods.Compost:    2 * 1.05,
}

// wasteModifier adjusts by-product demand for disposal cost
func wasteModifier(g *goods.Good) float64 {
	if m, ok := wasteModifiers[nameKey(g)]; ok {
		return m
	}
	return 1
}

var electricalFlatten = []nameRule{
	{"light", 5}, {"resistor", 5}, {"capacitor", 5}, {"diode", 5},
	{"electrical wire", 0.01},
	{"wire connector", 0.01},
	{"power cable", 0.05},
	{"steel wire", 0.025},
	{"wire", 0.001},
}

var utilityFlatten = []nameRule{
	{"fiberglass", 0.00005},
	{"gasket", 0.05},
	{"plastic pipe", 0.1},
}

var genericPartFlatten = []nameRule{
	{"pipe", 0.4},
	{"valve", 0.02}, {"heat probe", 0.02},
	{"plastic", 0.2},
	{"tank", 0.1}, {"duct", 0.1},
	{"bottle", 0.02},
}

// Raw-material scale; the order matters since "sheet" also matches "glass sheet"
var rawPartFlatten = []nameRule{
	{"scrap", 0.01},
	{"ingot", 0.01},
	{"glass sheet", 0.025},
	{"glass tube", 8},
	{"sheet", 0.025},
	{"truss", 0.05},
	{"steel", 0.1},
	{"fiberglass", 0.00005},
	{"brick", 0.005},
}

const basePartDemand = 0.5

func partTypeFlatten(g *goods.Good) float64 {
	switch g.Type() {
	case goods.GoodTypeElectrical:
		return firstMatch(g, electricalFlatten, 0.15)
	case goods.GoodTypeInstrument:
		return 6
	case goods.GoodTypeMetallic:
		return 0.25
	case goods.GoodTypeUtility:
		return firstMatch(g, utilityFlatten, 0.25)
	case goods.GoodTypeTool:
		return firstMatch(g, []nameRule{{"drill", 0.5}}, 4)
	case goods.GoodTypeConstruction:
		return firstMatch(g, []nameRule{{"aerogel tile", 0.05}}, 0.5)
	case goods.GoodTypeEVA:
		return 1
	default:
		return firstMatch(g, genericPartFlatten, 1)
	}
}

// partFlatten is the fixed demand scale of a part
func partFlatten(g *goods.Good) float64 {
	return partTypeFlatten(g) * basePartDemand * firstMatch(g, rawPartFlatten, 1)
}

func nameKey(g *goods.Good) string {
	return strings.ToLower(strings.TrimSpace(g.Name()))
}
