package goods

import (
	"errors"
	"fmt"
)

// Domain errors for catalog construction and lookup

var (
	// ErrDuplicateGood is returned when two definitions share a name
	ErrDuplicateGood = errors.New("duplicate good")

	// ErrInvalidDefinition is returned when a catalog definition fails validation
	ErrInvalidDefinition = errors.New("invalid good definition")

	// ErrNoContainer is returned when no container holds a resource's phase
	ErrNoContainer = errors.New("no container for phase")

	// ErrInvalidProcess is returned when a production process is malformed
	ErrInvalidProcess = errors.New("invalid production process")
)

// ErrUnknownProcessItem indicates a process references a good the catalog does not define
type ErrUnknownProcessItem struct {
	Process string
	Item    string
}

func (e *ErrUnknownProcessItem) Error() string {
	return fmt.Sprintf("process %q references unknown item %q", e.Process, e.Item)
}

func (e *ErrUnknownProcessItem) Unwrap() error {
	return ErrInvalidProcess
}
