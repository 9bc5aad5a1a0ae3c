package credit

import (
	"errors"
	"fmt"
)

// ErrSelfCredit is returned when a settlement is asked for credit with itself
var ErrSelfCredit = errors.New("settlement cannot hold credit with itself")

// ErrUnknownSettlement is returned when a settlement has no credit ledger
type ErrUnknownSettlement struct {
	ID string
}

func (e *ErrUnknownSettlement) Error() string {
	return fmt.Sprintf("no credit ledger for settlement %q", e.ID)
}

// ErrInvalidBalance is returned when a restored balance row is malformed
type ErrInvalidBalance struct {
	Field  string
	Reason string
}

func (e *ErrInvalidBalance) Error() string {
	return fmt.Sprintf("invalid credit balance: %s - %s", e.Field, e.Reason)
}
