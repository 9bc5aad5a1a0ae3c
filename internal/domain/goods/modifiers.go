package goods

import "strings"

const (
	lifeSupportCost = 0.5
	foodCost        = 0.1
	derivedCost     = 0.07
	soyCost         = 0.05
	animalCost      = 10
	organismCost    = 10

	containerCost = 0.1
	evaSuitCost   = 2
	vehicleCost   = 2
	robotCost     = 2

	partDefaultCost = 1.1
	vehiclePartCost = 3
	electronicCost  = 0.5
	instrumentCost  = 1
	wireCost        = 0.005
	batteryCost     = 5
	fuelCellStack   = 8
	fuelCellCost    = 1
	boardCost       = 1
	cpuCost         = 10
	waferCost       = 50
)

// Non-edible resources priced by good type, checked before the named overrides
var resourceTypeCost = map[GoodType]float64{
	GoodTypeWaste:    0.0001,
	GoodTypeMedical:  0.01,
	GoodTypeOil:      0.01,
	GoodTypeCrop:     5,
	GoodTypeRock:     5,
	GoodTypeRegolith: 0.02,
	GoodTypeOre:      0.3,
	GoodTypeMineral:  0.3,
	GoodTypeElement:  0.5,
	GoodTypeChemical: 0.01,
}

var resourceNameCost = map[string]float64{
	Methane:        0.3,
	Methanol:       0.4,
	Hydrogen:       1,
	Chlorine:       0.25,
	CarbonDioxide:  0.0000005,
	CarbonMonoxide: 0.05,
	Ice:            0.5,
}

// costModifiers is the per-category cost modifier table
var costModifiers = map[Category]func(g *Good) float64{
	CategoryAmountResource: resourceCostModifier,
	CategoryItemResource:   partCostModifier,
	CategoryEquipment:      func(*Good) float64 { return evaSuitCost },
	CategoryContainer:      func(*Good) float64 { return containerCost },
	CategoryBin:            func(*Good) float64 { return containerCost },
	CategoryVehicle:        func(*Good) float64 { return vehicleCost },
	CategoryRobot:          func(*Good) float64 { return robotCost },
}

func computeCostModifier(g *Good) float64 {
	fn, ok := costModifiers[g.category]
	if !ok {
		return 0
	}
	return fn(g)
}

func resourceCostModifier(g *Good) float64 {
	if g.lifeSupport {
		return lifeSupportCost
	}
	if g.edible {
		switch g.goodType {
		case GoodTypeDerived:
			return derivedCost
		case GoodTypeSoyBased:
			return soyCost
		case GoodTypeAnimal:
			return animalCost
		case GoodTypeOrganism:
			return organismCost
		default:
			return foodCost
		}
	}
	if cost, ok := resourceTypeCost[g.goodType]; ok {
		return cost
	}
	if cost, ok := resourceNameCost[normalizeName(g.name)]; ok {
		return cost
	}
	return 0
}

func partCostModifier(g *Good) float64 {
	name := normalizeName(g.name)
	switch {
	case strings.Contains(name, "wire"):
		return wireCost
	case strings.Contains(name, "battery"):
		return batteryCost
	case g.goodType == GoodTypeVehiclePart || g.goodType == GoodTypeVehicle:
		return vehiclePartCost
	case g.goodType == GoodTypeElectronic:
		return electronicCost
	case g.goodType == GoodTypeInstrument:
		return instrumentCost
	case name == "stack":
		return fuelCellStack
	case name == "fuel cell":
		return fuelCellCost
	case strings.Contains(name, "board"):
		return boardCost
	case name == "microcontroller":
		return cpuCost
	case name == "semiconductor wafer":
		return waferCost
	default:
		return partDefaultCost
	}
}
