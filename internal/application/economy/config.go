package economy

import (
	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
)

// Config holds the engine's cadences and the tunables of its components
type Config struct {
	// ValuationInterval is the millisols between valuation ticks
	ValuationInterval float64

	// ListValidity is the millisols between shortlist refreshes
	ListValidity float64

	// ListOffset delays the first shortlist refresh after the start
	ListOffset float64

	// TradeModifier scales the value of delivered loads in negotiation
	TradeModifier float64

	Commerce commerce.Config
	Credit   credit.Policy
}

// DefaultConfig returns a valuation tick every 50 millisols and shortlists
// every 500 millisols, 10 millisols after the start
func DefaultConfig() Config {
	return Config{
		ValuationInterval: 50,
		ListValidity:      float64(market.ListValidity),
		ListOffset:        10,
		TradeModifier:     1,
		Commerce:          commerce.DefaultConfig(),
	}
}
