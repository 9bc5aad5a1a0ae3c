package config

import "github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"

// EconomyConfig holds the simulation cadences and the deal-finder thresholds
type EconomyConfig struct {
	// ValuationInterval is the millisols between valuation ticks
	ValuationInterval float64 `mapstructure:"valuation_interval" validate:"gt=0"`

	// ListValidity is the millisols between shortlist refreshes
	ListValidity float64 `mapstructure:"list_validity" validate:"gt=0"`

	// ListOffset delays the first shortlist refresh
	ListOffset float64 `mapstructure:"list_offset" validate:"gte=0"`

	// TradeModifier scales delivered load value during negotiation
	TradeModifier float64 `mapstructure:"trade_modifier" validate:"gt=0"`

	// CreditPersistAmounts stores credit amounts instead of only broadcasting them
	CreditPersistAmounts bool `mapstructure:"credit_persist_amounts"`

	Commerce commerce.Config `mapstructure:",squash"`
}
