package queries

import (
	"context"
	"fmt"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
)

// GetCreditQuery asks for credit balances. With both settlements set only
// that pair is reported.
type GetCreditQuery struct {
	From string
	To   string
}

// GetCreditResponse lists the balances
type GetCreditResponse struct {
	Balances []credit.Balance
}

// GetCreditHandler handles the GetCredit query
type GetCreditHandler struct {
	engine *economy.Engine
}

func NewGetCreditHandler(engine *economy.Engine) *GetCreditHandler {
	return &GetCreditHandler{engine: engine}
}

func (h *GetCreditHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetCreditQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCreditQuery")
	}

	if query.From != "" && query.To != "" {
		return &GetCreditResponse{Balances: []credit.Balance{{
			From:   query.From,
			To:     query.To,
			Amount: h.engine.Credit(query.From, query.To),
		}}}, nil
	}

	var out []credit.Balance
	for _, b := range h.engine.Balances() {
		if query.From == "" || b.From == query.From {
			out = append(out, b)
		}
	}
	return &GetCreditResponse{Balances: out}, nil
}
