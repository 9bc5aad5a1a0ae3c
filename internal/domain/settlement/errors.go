package settlement

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientStock is returned when a withdrawal exceeds what is held
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDuplicateSettlement is returned when a registry already holds an ID
	ErrDuplicateSettlement = errors.New("settlement already registered")

	// ErrInvalidTransition is returned for a mission state change that is not allowed
	ErrInvalidTransition = errors.New("invalid mission transition")
)

// StockError reports a withdrawal of a good the inventory cannot cover
type StockError struct {
	GoodID    int
	Requested float64
	Held      float64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("good %d: requested %.3f, held %.3f", e.GoodID, e.Requested, e.Held)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}
