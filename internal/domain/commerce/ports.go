package commerce

import (
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
)

// Settlement is a trading partner as the deal finder sees it
type Settlement interface {
	market.Site

	// Market returns the settlement's goods ledger
	Market() *market.Ledger

	// MissionEnabled reports whether the settlement accepts missions of a type
	MissionEnabled(t MissionType) bool
}

// Directory resolves every settlement of the run
type Directory interface {
	Settlements() []Settlement
}

// Vehicle is the carrier a deal is sized for
type Vehicle interface {
	// Spec returns the static vehicle definition
	Spec() goods.VehicleDefinition

	// Range returns the km the vehicle can cover on a mission of a type
	Range(t MissionType) float64

	// RepairParts returns the parts the vehicle may need repaired on a trip
	RepairParts() []int
}

// MissionDirectory lists the missions of the run
type MissionDirectory interface {
	Missions() []Mission
}

// CreditBook reads and writes the credit between settlements
type CreditBook interface {
	GetCredit(a, b string) float64
	SetCredit(a, b string, amount float64) error
}
