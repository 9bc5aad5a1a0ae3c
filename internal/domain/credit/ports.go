package credit

import "context"

// Balance is one directed credit entry
type Balance struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Validate checks a balance row before it is restored
func (b Balance) Validate() error {
	if b.From == "" {
		return &ErrInvalidBalance{Field: "from", Reason: "cannot be empty"}
	}
	if b.To == "" {
		return &ErrInvalidBalance{Field: "to", Reason: "cannot be empty"}
	}
	if b.From == b.To {
		return &ErrInvalidBalance{Field: "to", Reason: "must differ from the owning settlement"}
	}
	return nil
}

// Repository persists the credit balances of a run
type Repository interface {
	// SaveBalances replaces every stored balance
	SaveBalances(ctx context.Context, balances []Balance) error

	// LoadBalances returns every stored balance
	LoadBalances(ctx context.Context) ([]Balance, error)
}
