package commands

import (
	"context"
	"fmt"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
)

// AdvanceTimeCommand moves the simulation forward
type AdvanceTimeCommand struct {
	Millisols float64
}

// AdvanceTimeResponse reports the ticks that ran
type AdvanceTimeResponse struct {
	Report economy.TickReport
}

// AdvanceTimeHandler handles the AdvanceTime command
type AdvanceTimeHandler struct {
	engine *economy.Engine
}

// NewAdvanceTimeHandler creates a new AdvanceTimeHandler
func NewAdvanceTimeHandler(engine *economy.Engine) *AdvanceTimeHandler {
	return &AdvanceTimeHandler{engine: engine}
}

// Handle executes the AdvanceTime command
func (h *AdvanceTimeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AdvanceTimeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdvanceTimeCommand")
	}

	report, err := h.engine.Advance(ctx, cmd.Millisols)
	if err != nil {
		return nil, fmt.Errorf("failed to advance time: %w", err)
	}
	return &AdvanceTimeResponse{Report: report}, nil
}
