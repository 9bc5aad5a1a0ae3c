package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// GormLedgerRepository implements market.LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Save upserts the state of one settlement's ledger
func (r *GormLedgerRepository) Save(ctx context.Context, state *market.LedgerState) error {
	model, err := r.stateToModel(state)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "settlement_id"}},
		UpdateAll: true,
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save ledger %s: %w", state.SettlementID, result.Error)
	}
	return nil
}

// Load returns the saved state of a settlement's ledger
func (r *GormLedgerRepository) Load(ctx context.Context, settlementID string) (*market.LedgerState, error) {
	var model LedgerStateModel
	result := r.db.WithContext(ctx).Where("settlement_id = ?", settlementID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("ledger", settlementID)
		}
		return nil, fmt.Errorf("failed to load ledger %s: %w", settlementID, result.Error)
	}
	return r.modelToState(&model)
}

func (r *GormLedgerRepository) stateToModel(state *market.LedgerState) (*LedgerStateModel, error) {
	model := &LedgerStateModel{
		SettlementID:   state.SettlementID,
		RepairMod:      state.RepairMod,
		MaintenanceMod: state.MaintenanceMod,
		EVASuitMod:     state.EVASuitMod,
		Initialized:    state.Initialized,
	}

	fields := []struct {
		dst *string
		src interface{}
	}{
		{&model.Values, state.Values},
		{&model.Demand, state.Demand},
		{&model.Supply, state.Supply},
		{&model.Deflation, state.Deflation},
		{&model.TradeCache, state.TradeCache},
		{&model.Factors, state.Factors},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.src)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal ledger %s: %w", state.SettlementID, err)
		}
		*f.dst = string(b)
	}
	return model, nil
}

func (r *GormLedgerRepository) modelToState(model *LedgerStateModel) (*market.LedgerState, error) {
	state := &market.LedgerState{
		SettlementID:   model.SettlementID,
		RepairMod:      model.RepairMod,
		MaintenanceMod: model.MaintenanceMod,
		EVASuitMod:     model.EVASuitMod,
		Initialized:    model.Initialized,
	}

	fields := []struct {
		src string
		dst interface{}
	}{
		{model.Values, &state.Values},
		{model.Demand, &state.Demand},
		{model.Supply, &state.Supply},
		{model.Deflation, &state.Deflation},
		{model.TradeCache, &state.TradeCache},
		{model.Factors, &state.Factors},
	}
	for _, f := range fields {
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ledger %s: %w", model.SettlementID, err)
		}
	}
	return state, nil
}
