package market

import (
	"context"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// Holdings answers per-good quantity queries for one settlement
type Holdings interface {
	// AmountStored returns the kg of an amount resource in storage
	AmountStored(resourceID int) float64

	// ItemCount returns the units held of a part, equipment, container, bin or robot
	ItemCount(goodID int) int

	// InUseCount returns how many units of an equipment good are currently in use
	InUseCount(goodID int) int

	// VehicleCount returns the total and idle number of vehicles of a spec
	VehicleCount(goodID int) (total int, idle int)
}

// Site is the settlement as seen by its own ledger: stores, population and facilities.
// The ledger never keeps a Site; it is passed to every operation that needs one.
type Site interface {
	Holdings

	ID() string
	Coordinates() shared.Coordinates
	Objective() Objective

	// Citizens returns the resident population
	Citizens() int

	// JobCount returns the number of residents holding a job
	JobCount(job Job) int

	// TechLevel returns the highest tech level available for a process kind, or -1 if none
	TechLevel(kind goods.ProcessKind) int

	// FuelCapacity returns the combined tank capacity of the settlement's vehicles for a resource
	FuelCapacity(resourceID int) float64

	// PowerValue returns the value point of one kWh at the settlement
	PowerValue() float64

	// WaterRationLevel returns the current water rationing level (0 = none)
	WaterRationLevel() float64

	// MaintenanceDemand returns the number of a part pending for maintenance
	MaintenanceDemand(partID int) int
}

// Peer is another settlement whose market trade demand is measured against
type Peer interface {
	ID() string
	Coordinates() shared.Coordinates
	Market() *Ledger
}

// PeerDirectory resolves the other settlements of the run
type PeerDirectory interface {
	// Peers returns every settlement except the one with selfID
	Peers(selfID string) []Peer
}

// Environment carries the per-run collaborators every ledger operation uses
type Environment struct {
	Catalog *goods.Catalog
	Clock   shared.Clock
	Peers   PeerDirectory
}

// LedgerRepository persists ledger state
type LedgerRepository interface {
	// Save upserts the state of one settlement's ledger
	Save(ctx context.Context, state *LedgerState) error

	// Load returns the saved state of a settlement's ledger
	Load(ctx context.Context, settlementID string) (*LedgerState, error)
}

// DTOs for data transfer

// LedgerState is the persistable state of a ledger
type LedgerState struct {
	SettlementID   string                   `json:"settlement_id"`
	Values         map[int]float64          `json:"values"`
	Demand         map[int]float64          `json:"demand"`
	Supply         map[int]float64          `json:"supply"`
	Deflation      map[int]int              `json:"deflation"`
	TradeCache     map[int]float64          `json:"trade_cache"`
	Factors        map[CommerceType]float64 `json:"factors"`
	RepairMod      float64                  `json:"repair_mod"`
	MaintenanceMod float64                  `json:"maintenance_mod"`
	EVASuitMod     float64                  `json:"eva_suit_mod"`
	Initialized    bool                     `json:"initialized"`
}
