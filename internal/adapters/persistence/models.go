package persistence

import (
	"time"
)

// LedgerStateModel represents the ledger_states table
// One row per settlement; the maps are stored as JSON text
type LedgerStateModel struct {
	SettlementID   string    `gorm:"column:settlement_id;primaryKey;size:64"`
	Values         string    `gorm:"column:values_json;type:text;not null"`
	Demand         string    `gorm:"column:demand_json;type:text;not null"`
	Supply         string    `gorm:"column:supply_json;type:text;not null"`
	Deflation      string    `gorm:"column:deflation_json;type:text;not null"`
	TradeCache     string    `gorm:"column:trade_cache_json;type:text;not null"`
	Factors        string    `gorm:"column:factors_json;type:text;not null"`
	RepairMod      float64   `gorm:"column:repair_mod;not null"`
	MaintenanceMod float64   `gorm:"column:maintenance_mod;not null"`
	EVASuitMod     float64   `gorm:"column:eva_suit_mod;not null"`
	Initialized    bool      `gorm:"column:initialized;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (LedgerStateModel) TableName() string {
	return "ledger_states"
}

// CreditBalanceModel represents the credit_balances table
// Primary key is composite: (from_settlement, to_settlement)
type CreditBalanceModel struct {
	FromSettlement string  `gorm:"column:from_settlement;primaryKey;size:64"`
	ToSettlement   string  `gorm:"column:to_settlement;primaryKey;size:64"`
	Amount         float64 `gorm:"column:amount;not null"`
}

func (CreditBalanceModel) TableName() string {
	return "credit_balances"
}

// ValueRecordModel represents the value_history table
type ValueRecordModel struct {
	ID           int     `gorm:"column:id;primaryKey;autoIncrement"`
	SettlementID string  `gorm:"column:settlement_id;size:64;not null;index:idx_value_history_lookup"`
	GoodID       int     `gorm:"column:good_id;not null;index:idx_value_history_lookup"`
	OldValue     float64 `gorm:"column:old_value;not null"`
	NewValue     float64 `gorm:"column:new_value;not null"`
	Demand       float64 `gorm:"column:demand;not null"`
	Supply       float64 `gorm:"column:supply;not null"`
	RecordedAt   float64 `gorm:"column:recorded_at;not null;index"` // millisols
}

func (ValueRecordModel) TableName() string {
	return "value_history"
}

// GoodCostModel represents the good_costs table
type GoodCostModel struct {
	GoodID      int      `gorm:"column:good_id;primaryKey;autoIncrement:false"`
	Name        string   `gorm:"column:name;size:100;not null"`
	LaborTime   float64  `gorm:"column:labor_time"`
	Power       float64  `gorm:"column:power"`
	ProcessTime float64  `gorm:"column:process_time"`
	Skill       float64  `gorm:"column:skill"`
	Tech        float64  `gorm:"column:tech"`
	Modifier    float64  `gorm:"column:modifier"`
	Cost        float64  `gorm:"column:cost"`
	InterMarket *float64 `gorm:"column:inter_market"`
}

func (GoodCostModel) TableName() string {
	return "good_costs"
}

// AllModels lists every table the repositories use, in migration order
func AllModels() []interface{} {
	return []interface{}{
		&LedgerStateModel{},
		&CreditBalanceModel{},
		&ValueRecordModel{},
		&GoodCostModel{},
	}
}
