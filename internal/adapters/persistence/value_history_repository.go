package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

const valueHistoryBatch = 200

// GormValueHistoryRepository implements market.ValueHistoryRepository using GORM
type GormValueHistoryRepository struct {
	db *gorm.DB
}

// NewGormValueHistoryRepository creates a new GORM value history repository
func NewGormValueHistoryRepository(db *gorm.DB) *GormValueHistoryRepository {
	return &GormValueHistoryRepository{db: db}
}

// Append stores records in one batch
func (r *GormValueHistoryRepository) Append(ctx context.Context, records []*market.ValueRecord) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]ValueRecordModel, 0, len(records))
	for _, rec := range records {
		models = append(models, ValueRecordModel{
			SettlementID: rec.SettlementID(),
			GoodID:       rec.GoodID(),
			OldValue:     rec.OldValue(),
			NewValue:     rec.NewValue(),
			Demand:       rec.Demand(),
			Supply:       rec.Supply(),
			RecordedAt:   float64(rec.RecordedAt()),
		})
	}

	result := r.db.WithContext(ctx).CreateInBatches(&models, valueHistoryBatch)
	if result.Error != nil {
		return fmt.Errorf("failed to append value history: %w", result.Error)
	}
	return nil
}

// Recent returns up to limit records of a good at a settlement, newest first
func (r *GormValueHistoryRepository) Recent(
	ctx context.Context,
	settlementID string,
	goodID int,
	limit int,
) ([]*market.ValueRecord, error) {
	var models []ValueRecordModel
	query := r.db.WithContext(ctx).
		Where("settlement_id = ? AND good_id = ?", settlementID, goodID).
		Order("recorded_at DESC").
		Order("id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to get value history: %w", err)
	}

	records := make([]*market.ValueRecord, 0, len(models))
	for _, m := range models {
		rec, err := market.NewValueRecordWithID(m.ID, market.Event{
			Type:         market.EventValueChanged,
			SettlementID: m.SettlementID,
			GoodID:       m.GoodID,
			OldValue:     m.OldValue,
			NewValue:     m.NewValue,
			At:           shared.SimTime(m.RecordedAt),
		}, m.Demand, m.Supply)
		if err != nil {
			return nil, fmt.Errorf("failed to convert value record %d: %w", m.ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
