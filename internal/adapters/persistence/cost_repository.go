package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

// GormCostRepository implements goods.CostRepository using GORM
type GormCostRepository struct {
	db *gorm.DB
}

// NewGormCostRepository creates a new GORM cost repository
func NewGormCostRepository(db *gorm.DB) *GormCostRepository {
	return &GormCostRepository{db: db}
}

// SaveCosts upserts the cost state of every listed good
func (r *GormCostRepository) SaveCosts(ctx context.Context, states []goods.CostState) error {
	if len(states) == 0 {
		return nil
	}

	models := make([]GoodCostModel, 0, len(states))
	for _, s := range states {
		models = append(models, GoodCostModel{
			GoodID:      s.GoodID,
			Name:        s.Name,
			LaborTime:   s.Factors.LaborTime,
			Power:       s.Factors.Power,
			ProcessTime: s.Factors.ProcessTime,
			Skill:       s.Factors.Skill,
			Tech:        s.Factors.Tech,
			Modifier:    s.Modifier,
			Cost:        s.Cost,
			InterMarket: s.InterMarket,
		})
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "good_id"}},
		UpdateAll: true,
	}).Create(&models)
	if result.Error != nil {
		return fmt.Errorf("failed to save good costs: %w", result.Error)
	}
	return nil
}

// LoadCosts returns every saved cost state by good ID
func (r *GormCostRepository) LoadCosts(ctx context.Context) ([]goods.CostState, error) {
	var models []GoodCostModel
	if err := r.db.WithContext(ctx).Order("good_id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load good costs: %w", err)
	}

	states := make([]goods.CostState, 0, len(models))
	for _, m := range models {
		states = append(states, goods.CostState{
			GoodID: m.GoodID,
			Name:   m.Name,
			Factors: goods.ProductionFactors{
				LaborTime:   m.LaborTime,
				Power:       m.Power,
				ProcessTime: m.ProcessTime,
				Skill:       m.Skill,
				Tech:        m.Tech,
			},
			Modifier:    m.Modifier,
			Cost:        m.Cost,
			InterMarket: m.InterMarket,
		})
	}
	return states, nil
}
