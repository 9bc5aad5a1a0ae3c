package commerce

import "errors"

var (
	// ErrInvalidMissionType is returned when a mission type is not a commerce type
	ErrInvalidMissionType = errors.New("invalid commerce mission type")

	// ErrNoDeal is returned when no reachable settlement yields a deal
	ErrNoDeal = errors.New("no trading deal available")

	// ErrInvalidTradeModifier is returned when negotiation is asked to scale by a non-positive modifier
	ErrInvalidTradeModifier = errors.New("trade modifier must be positive")
)
