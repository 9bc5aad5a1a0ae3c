package goods

// StandardDefinitions returns the built-in colony catalog used when no
// scenario file provides one.
func StandardDefinitions() Definitions {
	return Definitions{
		Resources: []ResourceDefinition{
			{Name: Oxygen, Type: GoodTypeElement, Phase: PhaseGas, LifeSupport: true},
			{Name: Water, Type: GoodTypeCompound, Phase: PhaseLiquid, LifeSupport: true},
			{Name: Food, Type: GoodTypeDerived, Phase: PhaseSolid, LifeSupport: true, Edible: true},
			{Name: CarbonDioxide, Type: GoodTypeCompound, Phase: PhaseGas, LifeSupport: true},
			{Name: Hydrogen, Type: GoodTypeElement, Phase: PhaseGas},
			{Name: Methane, Type: GoodTypeCompound, Phase: PhaseGas},
			{Name: Methanol, Type: GoodTypeCompound, Phase: PhaseLiquid},
			{Name: CarbonMonoxide, Type: GoodTypeCompound, Phase: PhaseGas},
			{Name: Chlorine, Type: GoodTypeElement, Phase: PhaseGas},
			{Name: Ice, Type: GoodTypeCompound, Phase: PhaseSolid},
			{Name: Regolith, Type: GoodTypeRegolith, Phase: PhaseSolid},
			{Name: Sand, Type: GoodTypeCompound, Phase: PhaseSolid},
			{Name: Soil, Type: GoodTypeCompound, Phase: PhaseSolid},
			{Name: "hematite", Type: GoodTypeOre, Phase: PhaseSolid},
			{Name: "olivine", Type: GoodTypeMineral, Phase: PhaseSolid},
			{Name: "basalt", Type: GoodTypeRock, Phase: PhaseSolid},
			{Name: "polyethylene", Type: GoodTypeChemical, Phase: PhaseSolid},
			{Name: "fertilizer", Type: GoodTypeChemical, Phase: PhaseSolid},
			{Name: "soybean", Type: GoodTypeCrop, Phase: PhaseSolid, Edible: true},
			{Name: "tofu", Type: GoodTypeSoyBased, Phase: PhaseSolid, Edible: true},
			{Name: GreyWater, Type: GoodTypeWaste, Phase: PhaseLiquid},
			{Name: BlackWater, Type: GoodTypeWaste, Phase: PhaseLiquid},
			{Name: EWaste, Type: GoodTypeWaste, Phase: PhaseSolid},
			{Name: ToxicWaste, Type: GoodTypeWaste, Phase: PhaseSolid},
			{Name: FoodWaste, Type: GoodTypeWaste, Phase: PhaseSolid},
			{Name: CropWaste, Type: GoodTypeWaste, Phase: PhaseSolid},
		},
		Parts: []PartDefinition{
			{Name: "electrical wire", Type: GoodTypeElectrical, Mass: 0.1},
			{Name: "battery", Type: GoodTypeElectrical, Mass: 1},
			{Name: "fuel cell", Type: GoodTypeElectrical, Mass: 2},
			{Name: "stack", Type: GoodTypeElectrical, Mass: 10},
			{Name: "semiconductor wafer", Type: GoodTypeElectronic, Mass: 0.2},
			{Name: "microcontroller", Type: GoodTypeElectronic, Mass: 0.05},
			{Name: "circuit board", Type: GoodTypeElectronic, Mass: 0.2},
			{Name: "steel ingot", Type: GoodTypeRaw, Mass: 5},
			{Name: "steel sheet", Type: GoodTypeMetallic, Mass: 3},
			{Name: "plastic pipe", Type: GoodTypeUtility, Mass: 1.5},
			{Name: "valve", Type: GoodTypeUtility, Mass: 0.5},
			{Name: "gasket", Type: GoodTypeUtility, Mass: 0.05},
			{Name: "rover wheel", Type: GoodTypeVehiclePart, Mass: 10},
			{Name: "drill", Type: GoodTypeTool, Mass: 4},
			{Name: "spectrometer", Type: GoodTypeInstrument, Mass: 2},
			{Name: "oven", Type: GoodTypeKitchen, Mass: 20},
			{Name: "eva helmet", Type: GoodTypeEVA, Mass: 3},
		},
		Equipment: []EquipmentDefinition{
			{Name: "eva suit", Mass: 45, EVASuit: true},
			{Name: GasCanister, Mass: 2, Capacity: 50, Holds: PhaseGas},
			{Name: Barrel, Mass: 5, Capacity: 200, Holds: PhaseLiquid},
			{Name: Bag, Mass: 0.1, Capacity: 50, Holds: PhaseSolid},
			{Name: LargeBag, Mass: 0.2, Capacity: 100, Holds: PhaseSolid},
			{Name: SpecimenBox, Mass: 1, Capacity: 40, Holds: PhaseSolid},
			{Name: WheelBarrow, Mass: 10, Capacity: 150, Holds: PhaseSolid},
		},
		Bins: []BinDefinition{
			{Name: "crate", Mass: 15, Capacity: 500},
			{Name: "basket", Mass: 1, Capacity: 50},
		},
		Vehicles: []VehicleDefinition{
			{Name: "explorer rover", Mass: 5000, CargoCapacity: 4000, BaseSpeed: 30, FuelResource: Methanol, FuelEconomy: 2.5, FuelCapacity: 900, CrewCapacity: 4},
			{Name: "cargo rover", Mass: 6000, CargoCapacity: 8000, BaseSpeed: 25, FuelResource: Methanol, FuelEconomy: 2, FuelCapacity: 1500, CrewCapacity: 2},
			{Name: "light utility vehicle", Mass: 500, CargoCapacity: 150, BaseSpeed: 40, FuelResource: Methanol, FuelEconomy: 4, FuelCapacity: 75, CrewCapacity: 1},
			{Name: "delivery drone", Mass: 200, CargoCapacity: 300, BaseSpeed: 80, FuelResource: Methanol, FuelEconomy: 8, FuelCapacity: 100},
		},
		Robots: []RobotDefinition{
			{Name: "chefbot", Mass: 80},
			{Name: "gardenbot", Mass: 90},
			{Name: "makerbot", Mass: 100},
			{Name: "repairbot", Mass: 100},
			{Name: "deliverybot", Mass: 120},
		},
	}
}

// StandardProcesses returns the built-in production recipes matching StandardDefinitions
func StandardProcesses() []Process {
	return []Process{
		{
			Name: "smelt hematite", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "hematite", Kind: ItemAmountResource, Amount: 100}, {Name: CarbonMonoxide, Kind: ItemAmountResource, Amount: 20}},
			Outputs:  []ProcessItem{{Name: "steel ingot", Kind: ItemPart, Amount: 10}, {Name: CarbonDioxide, Kind: ItemAmountResource, Amount: 15}},
			WorkTime: 200, ProcessTime: 500, Power: 5, Skill: 2, Tech: 2,
		},
		{
			Name: "roll steel sheet", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "steel ingot", Kind: ItemPart, Amount: 2}},
			Outputs:  []ProcessItem{{Name: "steel sheet", Kind: ItemPart, Amount: 1}},
			WorkTime: 100, ProcessTime: 200, Power: 1, Skill: 2, Tech: 2,
		},
		{
			Name: "draw electrical wire", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "steel ingot", Kind: ItemPart, Amount: 1}},
			Outputs:  []ProcessItem{{Name: "electrical wire", Kind: ItemPart, Amount: 10}},
			WorkTime: 50, ProcessTime: 100, Power: 0.5, Skill: 1, Tech: 1,
		},
		{
			Name: "etch circuit board", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "semiconductor wafer", Kind: ItemPart, Amount: 1}, {Name: "electrical wire", Kind: ItemPart, Amount: 2}},
			Outputs:  []ProcessItem{{Name: "circuit board", Kind: ItemPart, Amount: 4}},
			WorkTime: 300, ProcessTime: 400, Power: 1.5, Skill: 3, Tech: 3,
		},
		{
			Name: "fabricate microcontroller", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "semiconductor wafer", Kind: ItemPart, Amount: 1}},
			Outputs:  []ProcessItem{{Name: "microcontroller", Kind: ItemPart, Amount: 10}},
			WorkTime: 200, ProcessTime: 300, Power: 2, Skill: 4, Tech: 4,
		},
		{
			Name: "extrude plastic pipe", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "polyethylene", Kind: ItemAmountResource, Amount: 5}},
			Outputs:  []ProcessItem{{Name: "plastic pipe", Kind: ItemPart, Amount: 2}},
			WorkTime: 60, ProcessTime: 120, Power: 0.8, Skill: 1, Tech: 1,
		},
		{
			Name: "press gas canister", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "steel sheet", Kind: ItemPart, Amount: 2}, {Name: "valve", Kind: ItemPart, Amount: 1}},
			Outputs:  []ProcessItem{{Name: GasCanister, Kind: ItemEquipment, Amount: 1}},
			WorkTime: 80, ProcessTime: 150, Power: 1, Skill: 2, Tech: 2,
		},
		{
			Name: "press barrel", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "steel sheet", Kind: ItemPart, Amount: 4}},
			Outputs:  []ProcessItem{{Name: Barrel, Kind: ItemEquipment, Amount: 1}},
			WorkTime: 100, ProcessTime: 150, Power: 1, Skill: 1, Tech: 1,
		},
		{
			Name: "sew bag", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "polyethylene", Kind: ItemAmountResource, Amount: 1}},
			Outputs:  []ProcessItem{{Name: Bag, Kind: ItemEquipment, Amount: 1}},
			WorkTime: 20, ProcessTime: 30, Power: 0.1, Skill: 1, Tech: 1,
		},
		{
			Name: "assemble rover wheel", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: "steel sheet", Kind: ItemPart, Amount: 3}, {Name: "plastic pipe", Kind: ItemPart, Amount: 1}},
			Outputs:  []ProcessItem{{Name: "rover wheel", Kind: ItemPart, Amount: 1}},
			WorkTime: 150, ProcessTime: 250, Power: 1.2, Skill: 2, Tech: 2,
		},
		{
			Name: "synthesize food", Kind: ProcessManufacturing,
			Inputs:   []ProcessItem{{Name: Methane, Kind: ItemAmountResource, Amount: 2}, {Name: Water, Kind: ItemAmountResource, Amount: 1}},
			Outputs:  []ProcessItem{{Name: Food, Kind: ItemAmountResource, Amount: 0.5}},
			WorkTime: 100, ProcessTime: 300, Power: 3, Skill: 3, Tech: 3,
		},
		{
			Name: "press tofu", Kind: ProcessFoodProduction,
			Inputs:   []ProcessItem{{Name: "soybean", Kind: ItemAmountResource, Amount: 5}, {Name: Water, Kind: ItemAmountResource, Amount: 5}},
			Outputs:  []ProcessItem{{Name: "tofu", Kind: ItemAmountResource, Amount: 3}, {Name: FoodWaste, Kind: ItemAmountResource, Amount: 1}},
			WorkTime: 30, ProcessTime: 60, Power: 0.2, Skill: 1, Tech: 1,
		},
		{
			Name: "cook soybean ration", Kind: ProcessFoodProduction,
			Inputs:   []ProcessItem{{Name: "soybean", Kind: ItemAmountResource, Amount: 2}},
			Outputs:  []ProcessItem{{Name: Food, Kind: ItemAmountResource, Amount: 1}, {Name: CropWaste, Kind: ItemAmountResource, Amount: 0.5}},
			WorkTime: 20, ProcessTime: 40, Power: 0.1, Skill: 1, Tech: 0,
		},
	}
}

// NewStandardCatalog builds the built-in catalog with its process table
func NewStandardCatalog() (*Catalog, error) {
	table, err := NewStaticProcessTable(StandardProcesses())
	if err != nil {
		return nil, err
	}
	return NewCatalog(StandardDefinitions(), table)
}
