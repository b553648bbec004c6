package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
)

// MockStudentRepository is a mock implementation of persistence.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uint64) (*entity.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Student, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context) ([]*entity.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Student), args.Error(1)
}

func (m *MockStudentRepository) Create(ctx context.Context, student *entity.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) ApplyAdjustment(ctx context.Context, studentID uint64, delta int64, adminID uint64, reason string) (*entity.Student, int64, error) {
	args := m.Called(ctx, studentID, delta, adminID, reason)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*entity.Student), args.Get(1).(int64), args.Error(2)
}
