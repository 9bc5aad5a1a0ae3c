package commands

import (
	"context"
	"fmt"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
)

// ExecuteDealCommand carries out the best deal of a settlement
type ExecuteDealCommand struct {
	SettlementID string
	MissionType  string
	Vehicle      string
}

// ExecuteDealResponse is the outcome of the trade run
type ExecuteDealResponse struct {
	DealID      string
	MissionID   string
	Buyer       string
	Sold        []string
	Bought      []string
	ReturnOffer []string
	Credit      float64
	Warnings    []string
}

// ExecuteDealHandler handles the ExecuteDeal command
type ExecuteDealHandler struct {
	engine *economy.Engine
}

// NewExecuteDealHandler creates a new ExecuteDealHandler
func NewExecuteDealHandler(engine *economy.Engine) *ExecuteDealHandler {
	return &ExecuteDealHandler{engine: engine}
}

// Handle executes the ExecuteDeal command
func (h *ExecuteDealHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ExecuteDealCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExecuteDealCommand")
	}

	missionType, err := economy.ParseMissionType(cmd.MissionType)
	if err != nil {
		return nil, err
	}

	exec, err := h.engine.ExecuteDeal(ctx, cmd.SettlementID, missionType, cmd.Vehicle)
	if err != nil {
		return nil, fmt.Errorf("failed to execute deal: %w", err)
	}

	catalog := h.engine.Catalog()
	return &ExecuteDealResponse{
		DealID:      exec.Deal.ID().String(),
		MissionID:   exec.MissionID,
		Buyer:       exec.Deal.Buyer(),
		Sold:        economy.LoadNames(catalog, exec.Sold),
		Bought:      economy.LoadNames(catalog, exec.Bought),
		ReturnOffer: economy.LoadNames(catalog, exec.ReturnOffer),
		Credit:      exec.Credit,
		Warnings:    exec.Warnings,
	}, nil
}
