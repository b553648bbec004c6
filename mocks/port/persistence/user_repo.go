// Package persistence provides hand-written testify mocks for the
// persistence ports.
package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	"github.com/nileacademy/apple-rewards/internal/domain/reward"
)

// MockUserRepository is a mock implementation of persistence.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByBarcode(ctx context.Context, barcode string, role entity.Role) (*entity.User, error) {
	args := m.Called(ctx, barcode, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByNameAndRole(ctx context.Context, name string, role entity.Role) (*entity.User, error) {
	args := m.Called(ctx, name, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ApplyAdjustment(ctx context.Context, userID uint64, delta int64, adminID uint64, reason string) (*entity.User, int64, error) {
	args := m.Called(ctx, userID, delta, adminID, reason)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*entity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) RecordAttendance(ctx context.Context, userID uint64, adminID uint64) (*reward.AttendanceResult, error) {
	args := m.Called(ctx, userID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.AttendanceResult), args.Error(1)
}

func (m *MockUserRepository) ResetAssistantBalances(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
