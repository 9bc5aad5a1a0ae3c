package goods

import "fmt"

// Category is the closed set of good variants. Every per-category behavior
// (cost modifier, price, demand, supply) is looked up in a table keyed by it.
type Category string

const (
	// CategoryAmountResource is a bulk resource measured in kg
	CategoryAmountResource Category = "AMOUNT_RESOURCE"

	// CategoryItemResource is a countable part
	CategoryItemResource Category = "ITEM_RESOURCE"

	// CategoryEquipment is non-container equipment (EVA suits)
	CategoryEquipment Category = "EQUIPMENT"

	// CategoryContainer holds amount resources of one phase
	CategoryContainer Category = "CONTAINER"

	// CategoryBin is a storage bin for a single amount resource
	CategoryBin Category = "BIN"

	// CategoryVehicle is a vehicle spec
	CategoryVehicle Category = "VEHICLE"

	// CategoryRobot is a robot type
	CategoryRobot Category = "ROBOT"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryAmountResource,
		CategoryItemResource,
		CategoryEquipment,
		CategoryContainer,
		CategoryBin,
		CategoryVehicle,
		CategoryRobot,
	}
}

// String returns the string representation of the Category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryAmountResource,
		CategoryItemResource,
		CategoryEquipment,
		CategoryContainer,
		CategoryBin,
		CategoryVehicle,
		CategoryRobot:
		return true
	default:
		return false
	}
}

// IsEquipmentLike reports whether goods of this category are counted as equipment units
func (c Category) IsEquipmentLike() bool {
	return c == CategoryEquipment || c == CategoryContainer || c == CategoryBin
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}

// GoodType is the finer grouping used by cost modifiers and demand flattening
type GoodType string

const (
	GoodTypeAnimal       GoodType = "ANIMAL"
	GoodTypeChemical     GoodType = "CHEMICAL"
	GoodTypeCompound     GoodType = "COMPOUND"
	GoodTypeCrop         GoodType = "CROP"
	GoodTypeDerived      GoodType = "DERIVED"
	GoodTypeElement      GoodType = "ELEMENT"
	GoodTypeGemstone     GoodType = "GEMSTONE"
	GoodTypeInsect       GoodType = "INSECT"
	GoodTypeMedical      GoodType = "MEDICAL"
	GoodTypeMineral      GoodType = "MINERAL"
	GoodTypeOil          GoodType = "OIL"
	GoodTypeOre          GoodType = "ORE"
	GoodTypeOrganism     GoodType = "ORGANISM"
	GoodTypeRegolith     GoodType = "REGOLITH"
	GoodTypeRock         GoodType = "ROCK"
	GoodTypeSoyBased     GoodType = "SOY_BASED"
	GoodTypeTissue       GoodType = "TISSUE"
	GoodTypeUtility      GoodType = "UTILITY"
	GoodTypeWaste        GoodType = "WASTE"
	GoodTypeAttachment   GoodType = "ATTACHMENT"
	GoodTypeConstruction GoodType = "CONSTRUCTION"
	GoodTypeElectrical   GoodType = "ELECTRICAL"
	GoodTypeElectronic   GoodType = "ELECTRONIC"
	GoodTypeInstrument   GoodType = "INSTRUMENT"
	GoodTypeKitchen      GoodType = "KITCHEN"
	GoodTypeMetallic     GoodType = "METALLIC"
	GoodTypeRaw          GoodType = "RAW"
	GoodTypeTool         GoodType = "TOOL"
	GoodTypeVehiclePart  GoodType = "VEHICLE_PART"
	GoodTypeEVA          GoodType = "EVA"
	GoodTypeContainer    GoodType = "CONTAINER"
	GoodTypeBin          GoodType = "BIN"
	GoodTypeVehicle      GoodType = "VEHICLE"
	GoodTypeRobot        GoodType = "ROBOT"
)

var validGoodTypes = map[GoodType]bool{
	GoodTypeAnimal: true, GoodTypeChemical: true, GoodTypeCompound: true, GoodTypeCrop: true,
	GoodTypeDerived: true, GoodTypeElement: true, GoodTypeGemstone: true, GoodTypeInsect: true,
	GoodTypeMedical: true, GoodTypeMineral: true, GoodTypeOil: true, GoodTypeOre: true,
	GoodTypeOrganism: true, GoodTypeRegolith: true, GoodTypeRock: true, GoodTypeSoyBased: true,
	GoodTypeTissue: true, GoodTypeUtility: true, GoodTypeWaste: true, GoodTypeAttachment: true,
	GoodTypeConstruction: true, GoodTypeElectrical: true, GoodTypeElectronic: true,
	GoodTypeInstrument: true, GoodTypeKitchen: true, GoodTypeMetallic: true, GoodTypeRaw: true,
	GoodTypeTool: true, GoodTypeVehiclePart: true, GoodTypeEVA: true, GoodTypeContainer: true,
	GoodTypeBin: true, GoodTypeVehicle: true, GoodTypeRobot: true,
}

// IsValid checks if the good type is known
func (t GoodType) IsValid() bool {
	return validGoodTypes[t]
}

// ParseGoodType parses a string into a GoodType
func ParseGoodType(s string) (GoodType, error) {
	t := GoodType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid good type: %s", s)
	}
	return t, nil
}

// Phase is the physical state of an amount resource; it decides the container used to ship it
type Phase string

const (
	PhaseGas    Phase = "GAS"
	PhaseLiquid Phase = "LIQUID"
	PhaseSolid  Phase = "SOLID"
)

// IsValid checks if the phase is known
func (p Phase) IsValid() bool {
	return p == PhaseGas || p == PhaseLiquid || p == PhaseSolid
}
