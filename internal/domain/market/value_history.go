package market

import (
	"context"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// ValueRecord is a point-in-time snapshot of one good's value at a settlement.
// Used for value-trend reporting; immutable once built.
type ValueRecord struct {
	id           int
	settlementID string
	goodID       int
	oldValue     float64
	newValue     float64
	demand       float64
	supply       float64
	recordedAt   shared.SimTime
}

// NewValueRecord builds a record from a value-change event and the ledger's
// demand and supply at that moment
func NewValueRecord(e Event, demand, supply float64) (*ValueRecord, error) {
	if e.SettlementID == "" {
		return nil, ErrInvalidSettlementID
	}
	if e.NewValue <= 0 {
		return nil, ErrInvalidValuePoint
	}

	return &ValueRecord{
		settlementID: e.SettlementID,
		goodID:       e.GoodID,
		oldValue:     e.OldValue,
		newValue:     e.NewValue,
		demand:       demand,
		supply:       supply,
		recordedAt:   e.At,
	}, nil
}

// NewValueRecordWithID rebuilds a stored record
func NewValueRecordWithID(id int, e Event, demand, supply float64) (*ValueRecord, error) {
	r, err := NewValueRecord(e, demand, supply)
	if err != nil {
		return nil, err
	}
	r.id = id
	return r, nil
}

func (r *ValueRecord) ID() int                    { return r.id }
func (r *ValueRecord) SettlementID() string       { return r.settlementID }
func (r *ValueRecord) GoodID() int                { return r.goodID }
func (r *ValueRecord) OldValue() float64          { return r.oldValue }
func (r *ValueRecord) NewValue() float64          { return r.newValue }
func (r *ValueRecord) Demand() float64            { return r.demand }
func (r *ValueRecord) Supply() float64            { return r.supply }
func (r *ValueRecord) RecordedAt() shared.SimTime { return r.recordedAt }

// ChangePercent returns the relative change from the previous value point.
// A first valuation (no previous value) reports 0.
func (r *ValueRecord) ChangePercent() float64 {
	if r.oldValue == 0 {
		return 0
	}
	return (r.newValue - r.oldValue) / r.oldValue * 100
}

// ValueHistoryRepository persists value records
type ValueHistoryRepository interface {
	// Append stores records in one batch
	Append(ctx context.Context, records []*ValueRecord) error

	// Recent returns up to limit records of a good at a settlement, newest first
	Recent(ctx context.Context, settlementID string, goodID int, limit int) ([]*ValueRecord, error)
}
