package queries

import (
	"context"
	"fmt"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
)

// GetMarketQuery requests one settlement's market view
type GetMarketQuery struct {
	SettlementID string
}

// GetMarketResponse carries the view
type GetMarketResponse struct {
	Market economy.MarketView
}

// GetMarketHandler handles the GetMarket query
type GetMarketHandler struct {
	engine *economy.Engine
}

func NewGetMarketHandler(engine *economy.Engine) *GetMarketHandler {
	return &GetMarketHandler{engine: engine}
}

func (h *GetMarketHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetMarketQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetMarketQuery")
	}

	view, err := h.engine.Market(query.SettlementID)
	if err != nil {
		return nil, err
	}
	return &GetMarketResponse{Market: view}, nil
}
