package queries

import (
	"context"
	"fmt"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// FindDealQuery asks for the best deal of a settlement
type FindDealQuery struct {
	SettlementID string
	MissionType  string
	Vehicle      string
}

// FindDealResponse describes the deal found
type FindDealResponse struct {
	DealID         string
	Seller         string
	Buyer          string
	Profit         float64
	SellingRevenue float64
	BuyingRevenue  float64
	TradeCost      float64
	CreatedAt      shared.SimTime
	BuyLoad        []string
	SellLoad       []string
	Skipped        []string
}

// FindDealHandler handles the FindDeal query
type FindDealHandler struct {
	engine *economy.Engine
}

func NewFindDealHandler(engine *economy.Engine) *FindDealHandler {
	return &FindDealHandler{engine: engine}
}

func (h *FindDealHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*FindDealQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FindDealQuery")
	}

	missionType, err := economy.ParseMissionType(query.MissionType)
	if err != nil {
		return nil, err
	}
	deal, err := h.engine.FindDeal(ctx, query.SettlementID, missionType, query.Vehicle)
	if err != nil {
		return nil, err
	}

	catalog := h.engine.Catalog()
	resp := &FindDealResponse{
		DealID:         deal.ID().String(),
		Seller:         deal.Seller(),
		Buyer:          deal.Buyer(),
		Profit:         deal.Profit(),
		SellingRevenue: deal.SellingRevenue(),
		BuyingRevenue:  deal.BuyingRevenue(),
		TradeCost:      deal.TradeCost(),
		CreatedAt:      deal.CreatedAt(),
		BuyLoad:        economy.LoadNames(catalog, deal.BuyLoad()),
		SellLoad:       economy.LoadNames(catalog, deal.SellLoad()),
	}
	for _, f := range deal.Failures() {
		name := fmt.Sprint(f.GoodID)
		if g, err := catalog.Lookup(f.GoodID); err == nil {
			name = g.Name()
		}
		resp.Skipped = append(resp.Skipped, fmt.Sprintf("%s: %v", name, f.Err))
	}
	return resp, nil
}
