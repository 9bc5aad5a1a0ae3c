package feed

import (
	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
)

// Message types
const (
	TypeValueChanged        = "value_changed"
	TypeShortlistsRefreshed = "shortlists_refreshed"
	TypeCreditChanged       = "credit_changed"
	TypeDealComputed        = "deal_computed"
)

// EventSource is the part of the engine the feed listens to
type EventSource interface {
	SubscribeMarket(fn market.Listener) func()
	SubscribeCredit(fn credit.Listener) func()
	SubscribeDeals(fn commerce.Listener) func()
}

type valuePayload struct {
	Settlement string  `json:"settlement"`
	GoodID     int     `json:"good_id"`
	Good       string  `json:"good,omitempty"`
	OldValue   float64 `json:"old_value"`
	NewValue   float64 `json:"new_value"`
}

type refreshPayload struct {
	Settlement string `json:"settlement"`
}

type creditPayload struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type dealPayload struct {
	DealID         string  `json:"deal_id"`
	Seller         string  `json:"seller"`
	Buyer          string  `json:"buyer"`
	Mission        string  `json:"mission"`
	Profit         float64 `json:"profit"`
	SellingRevenue float64 `json:"selling_revenue"`
	BuyingRevenue  float64 `json:"buying_revenue"`
	TradeCost      float64 `json:"trade_cost"`
}

// Attach forwards every engine event to the hub's clients and returns a
// function that stops forwarding. catalog may be nil; it only adds good names.
func (h *Hub) Attach(src EventSource, catalog *goods.Catalog) func() {
	stops := []func(){
		src.SubscribeMarket(func(e market.Event) {
			switch e.Type {
			case market.EventValueChanged:
				p := valuePayload{Settlement: e.SettlementID, GoodID: e.GoodID, OldValue: e.OldValue, NewValue: e.NewValue}
				if catalog != nil {
					if g, err := catalog.Lookup(e.GoodID); err == nil {
						p.Good = g.Name()
					}
				}
				_ = h.Publish(TypeValueChanged, e.At, p)
			case market.EventShortlistsRefreshed:
				_ = h.Publish(TypeShortlistsRefreshed, e.At, refreshPayload{Settlement: e.SettlementID})
			}
		}),
		src.SubscribeCredit(func(e credit.Event) {
			_ = h.Publish(TypeCreditChanged, e.At, creditPayload{From: e.From, To: e.To, Amount: e.Amount})
		}),
		src.SubscribeDeals(func(e commerce.DealComputed) {
			if e.Deal == nil {
				return
			}
			_ = h.Publish(TypeDealComputed, e.At, dealPayload{
				DealID:         e.Deal.ID().String(),
				Seller:         e.Deal.Seller(),
				Buyer:          e.Deal.Buyer(),
				Mission:        string(e.Deal.Mission()),
				Profit:         e.Deal.Profit(),
				SellingRevenue: e.Deal.SellingRevenue(),
				BuyingRevenue:  e.Deal.BuyingRevenue(),
				TradeCost:      e.Deal.TradeCost(),
			})
		}),
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}
