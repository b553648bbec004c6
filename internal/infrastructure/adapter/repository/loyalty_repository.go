package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/model"
)

// LoyaltyRepository implements persistence.LoyaltyRepository using GORM.
// It is read-only: bonus rows are written inside the attendance
// transaction in UserRepository.
type LoyaltyRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewLoyaltyRepository creates a new LoyaltyRepository instance
func NewLoyaltyRepository(db *gorm.DB, logger coreport.Logger) *LoyaltyRepository {
	return &LoyaltyRepository{
		db:     db,
		logger: logger,
	}
}

// ListByUser returns a user's bonus history newest-first
func (r *LoyaltyRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.LoyaltyBonus, error) {
	var bonusModels []model.LoyaltyBonus
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bonusModels)

	if result.Error != nil {
		r.logger.Error("Database error when listing loyalty bonuses", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	bonuses := make([]*entity.LoyaltyBonus, 0, len(bonusModels))
	for _, m := range bonusModels {
		bonuses = append(bonuses, &entity.LoyaltyBonus{
			ID:          m.ID,
			UserID:      m.UserID,
			BonusType:   m.BonusType,
			BonusApples: m.BonusApples,
			CreatedAt:   m.CreatedAt,
		})
	}

	return bonuses, nil
}
