package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
)

// MockLoyaltyRepository is a mock implementation of persistence.LoyaltyRepository
type MockLoyaltyRepository struct {
	mock.Mock
}

func (m *MockLoyaltyRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.LoyaltyBonus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LoyaltyBonus), args.Error(1)
}
