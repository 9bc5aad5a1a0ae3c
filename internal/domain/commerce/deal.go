package commerce

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// DealID is a value object identifying one computed deal
type DealID struct {
	value string
}

// NewDealID creates a DealID with a generated UUID
func NewDealID() DealID {
	return DealID{value: uuid.New().String()}
}

// ParseDealID creates a DealID from an existing UUID string
func ParseDealID(id string) (DealID, error) {
	if id == "" {
		return DealID{}, fmt.Errorf("deal_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return DealID{}, fmt.Errorf("invalid deal_id format: %w", err)
	}
	return DealID{value: id}, nil
}

func (d DealID) String() string {
	return d.value
}

// IsZero checks if the DealID is uninitialized
func (d DealID) IsZero() bool {
	return d.value == ""
}

// Deal is the estimated outcome of trading with one counterpart settlement.
// Deals are immutable once computed.
type Deal struct {
	id        DealID
	seller    string
	buyer     string
	mission   MissionType
	profit    float64
	estimate  ProfitEstimate
	createdAt shared.SimTime
	buyLoad   Load
	sellLoad  Load
	failures  []Evaluation
}

func newDeal(seller, buyer string, mission MissionType, estimate ProfitEstimate, at shared.SimTime, buy, sell LoadResult) *Deal {
	failures := append(append([]Evaluation(nil), buy.Failures...), sell.Failures...)
	return &Deal{
		id:        NewDealID(),
		seller:    seller,
		buyer:     buyer,
		mission:   mission,
		profit:    estimate.Profit(),
		estimate:  estimate,
		createdAt: at,
		buyLoad:   buy.Load.Clone(),
		sellLoad:  sell.Load.Clone(),
		failures:  failures,
	}
}

func (d *Deal) ID() DealID                { return d.id }
func (d *Deal) Seller() string            { return d.seller }
func (d *Deal) Buyer() string             { return d.buyer }
func (d *Deal) Mission() MissionType      { return d.mission }
func (d *Deal) Profit() float64           { return d.profit }
func (d *Deal) CreatedAt() shared.SimTime { return d.createdAt }

// SellingRevenue is what the sell load earns at the buyer over its home value
func (d *Deal) SellingRevenue() float64 { return d.estimate.SellingRevenue }

// BuyingRevenue is what the buy load is worth at home over its price at the buyer
func (d *Deal) BuyingRevenue() float64 { return d.estimate.BuyingRevenue }

// TradeCost is the round-trip mission cost
func (d *Deal) TradeCost() float64 { return d.estimate.TradeCost }

// BuyLoad returns what the starting settlement would buy from the buyer
func (d *Deal) BuyLoad() Load {
	return d.buyLoad.Clone()
}

// SellLoad returns what the starting settlement would sell to the buyer
func (d *Deal) SellLoad() Load {
	return d.sellLoad.Clone()
}

// Failures returns the goods whose evaluation failed while building the loads
func (d *Deal) Failures() []Evaluation {
	return append([]Evaluation(nil), d.failures...)
}

// Better reports whether d beats other: higher profit first, then buyer name
func (d *Deal) Better(other *Deal) bool {
	if other == nil {
		return true
	}
	if d.profit != other.profit {
		return d.profit > other.profit
	}
	return d.buyer < other.buyer
}

func (d *Deal) String() string {
	return fmt.Sprintf("%s deal %s -> %s profit %.2f", d.mission, d.seller, d.buyer, d.profit)
}
