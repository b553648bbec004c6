package persistence

import (
	"context"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
)

// LoyaltyRepository reads the append-only loyalty bonus history. Writes
// happen inside the attendance transaction in UserRepository so the credit
// and its guard row commit together.
type LoyaltyRepository interface {
	// ListByUser returns a user's bonus history newest-first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.LoyaltyBonus, error)
}
