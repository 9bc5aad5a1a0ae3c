package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
)

// GormCreditRepository implements credit.Repository using GORM
type GormCreditRepository struct {
	db *gorm.DB
}

// NewGormCreditRepository creates a new GORM credit repository
func NewGormCreditRepository(db *gorm.DB) *GormCreditRepository {
	return &GormCreditRepository{db: db}
}

// SaveBalances replaces every stored balance in one transaction
func (r *GormCreditRepository) SaveBalances(ctx context.Context, balances []credit.Balance) error {
	for _, b := range balances {
		if err := b.Validate(); err != nil {
			return err
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&CreditBalanceModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear balances: %w", err)
		}
		if len(balances) == 0 {
			return nil
		}

		models := make([]CreditBalanceModel, 0, len(balances))
		for _, b := range balances {
			models = append(models, CreditBalanceModel{
				FromSettlement: b.From,
				ToSettlement:   b.To,
				Amount:         b.Amount,
			})
		}
		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to save balances: %w", err)
		}
		return nil
	})
}

// LoadBalances returns every stored balance ordered by settlement pair
func (r *GormCreditRepository) LoadBalances(ctx context.Context) ([]credit.Balance, error) {
	var models []CreditBalanceModel
	result := r.db.WithContext(ctx).
		Order("from_settlement ASC").
		Order("to_settlement ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load balances: %w", result.Error)
	}

	balances := make([]credit.Balance, 0, len(models))
	for _, m := range models {
		balances = append(balances, credit.Balance{From: m.FromSettlement, To: m.ToSettlement, Amount: m.Amount})
	}
	return balances, nil
}
