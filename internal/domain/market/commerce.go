package market

import "fmt"

// CommerceType is a settlement-wide economic focus that weights demand
type CommerceType string

const (
	CommerceTransport     CommerceType = "TRANSPORT"
	CommerceTourism       CommerceType = "TOURISM"
	CommerceCrop          CommerceType = "CROP"
	CommerceManufacturing CommerceType = "MANUFACTURING"
	CommerceResearch      CommerceType = "RESEARCH"
	CommerceTrade         CommerceType = "TRADE"
	CommerceBuilding      CommerceType = "BUILDING"
)

// Fixed weights applied when a commerce factor is set
var commerceWeights = map[CommerceType]float64{
	CommerceResearch: 1.5,
}

// AllCommerceTypes returns every commerce type
func AllCommerceTypes() []CommerceType {
	return []CommerceType{
		CommerceTransport,
		CommerceTourism,
		CommerceCrop,
		CommerceManufacturing,
		CommerceResearch,
		CommerceTrade,
		CommerceBuilding,
	}
}

// ParseCommerceType parses a string into a CommerceType
func ParseCommerceType(s string) (CommerceType, error) {
	for _, c := range AllCommerceTypes() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidCommerceType, s)
}

// Objective is a settlement's declared development goal
type Objective string

const (
	ObjectiveNone               Objective = ""
	ObjectiveBuildersHaven      Objective = "BUILDERS_HAVEN"
	ObjectiveCropFarm           Objective = "CROP_FARM"
	ObjectiveManufacturingDepot Objective = "MANUFACTURING_DEPOT"
	ObjectiveResearchCampus     Objective = "RESEARCH_CAMPUS"
	ObjectiveTradeCenter        Objective = "TRADE_CENTER"
	ObjectiveTransportationHub  Objective = "TRANSPORTATION_HUB"
	ObjectiveTourism            Objective = "TOURISM"
)

// ParseObjective parses a string into an Objective. Empty means no objective.
func ParseObjective(s string) (Objective, error) {
	switch o := Objective(s); o {
	case ObjectiveNone, ObjectiveBuildersHaven, ObjectiveCropFarm, ObjectiveManufacturingDepot,
		ObjectiveResearchCampus, ObjectiveTradeCenter, ObjectiveTransportationHub, ObjectiveTourism:
		return o, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidObjective, s)
}

// Job is a settlement job that drives equipment and vehicle demand
type Job string

const (
	JobAreologist Job = "AREOLOGIST"
	JobTrader     Job = "TRADER"
	JobPilot      Job = "PILOT"
	JobEngineer   Job = "ENGINEER"
	JobBotanist   Job = "BOTANIST"
	JobChef       Job = "CHEF"
)

// Priority modifier bases for repair parts, maintenance parts and EVA suits
const (
	BaseRepairPart = 150
	BaseMaintPart  = 15
	BaseEVASuit    = 1

	maxPriorityLevel = 5
)

// computeModifier maps a priority level onto a modifier: level 1 is the base,
// anything lower halves it and higher levels double it per level up to 5.
func computeModifier(base float64, level int) float64 {
	switch {
	case level == 1:
		return base
	case level < 1:
		return base / 2
	default:
		if level > maxPriorityLevel {
			level = maxPriorityLevel
		}
		return float64(int(1)<<uint(level)) * base
	}
}

// computeLevel inverts computeModifier for a modifier/base ratio
func computeLevel(ratio float64) int {
	switch {
	case ratio < 1:
		return 0
	case ratio == 1:
		return 1
	default:
		return nthPower(ratio)
	}
}

func nthPower(num float64) int {
	power := 0
	for n := int(num); n > 1; n /= 2 {
		power++
	}
	return power
}
