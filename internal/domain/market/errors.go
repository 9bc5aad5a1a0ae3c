package market

import "errors"

// Domain errors for settlement market operations

var (
	// ErrUnknownGood is returned when a ledger has no entry for a good ID
	ErrUnknownGood = errors.New("good not tracked by ledger")

	// ErrNotEssential is returned when a resource has no essential reserve configured
	ErrNotEssential = errors.New("resource is not essential")

	// ErrInvalidCommerceType is returned when a commerce type is not in the valid set
	ErrInvalidCommerceType = errors.New("invalid commerce type")

	// ErrInvalidObjective is returned when a settlement objective is not in the valid set
	ErrInvalidObjective = errors.New("invalid settlement objective")

	// ErrSettlementMismatch is returned when restoring a state saved for another settlement
	ErrSettlementMismatch = errors.New("ledger state belongs to another settlement")

	// ErrInvalidSettlementID is returned when a value record has no settlement
	ErrInvalidSettlementID = errors.New("settlement id cannot be empty")

	// ErrInvalidValuePoint is returned when a value record carries a non-positive value
	ErrInvalidValuePoint = errors.New("value point must be positive")
)
