package goods

// Names of resources and equipment the valuation rules single out.
// Lookups are case-insensitive.
const (
	Oxygen         = "oxygen"
	Water          = "water"
	Food           = "food"
	Methane        = "methane"
	Methanol       = "methanol"
	Hydrogen       = "hydrogen"
	Chlorine       = "chlorine"
	CarbonDioxide  = "carbon dioxide"
	CarbonMonoxide = "carbon monoxide"
	Ice            = "ice"
	Regolith       = "regolith"
	Sand           = "sand"
	GreyWater      = "grey water"
	BlackWater     = "black water"
	BrineWater     = "brine water"
	EWaste         = "electronic waste"
	ToxicWaste     = "toxic waste"
	FoodWaste      = "food waste"
	SolidWaste     = "solid waste"
	CropWaste      = "crop waste"
	Compost        = "compost"
	Leaves         = "leaves"
	Soil           = "soil"
	Acetylene      = "acetylene"

	GasCanister = "gas canister"
	Barrel      = "barrel"
	Bag         = "bag"
	SpecimenBox = "specimen box"
	LargeBag    = "large bag"
	WheelBarrow = "wheelbarrow"
)

// TradeExcludedResources never appear on a buy or sell list
var TradeExcludedResources = []string{
	Regolith,
	Ice,
	CarbonDioxide,
	CarbonMonoxide,
	Sand,
	GreyWater,
	BlackWater,
	EWaste,
	ToxicWaste,
}
