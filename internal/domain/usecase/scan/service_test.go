package scan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	"github.com/nileacademy/apple-rewards/internal/domain/reward"
	"github.com/nileacademy/apple-rewards/internal/domain/usecase/attendance"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/logger"
	mockpersistence "github.com/nileacademy/apple-rewards/mocks/port/persistence"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newScanService(userRepo *mockpersistence.MockUserRepository, studentRepo *mockpersistence.MockStudentRepository) *Service {
	log := logger.NewNoopLogger()
	return NewService(userRepo, studentRepo, attendance.NewService(userRepo, log), log)
}

func TestService_Scan_Student(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)}

	student := entity.NewStudent(11, "Omar", "100011", clock)
	student.SetApples(320, clock)

	userRepo := new(mockpersistence.MockUserRepository)
	studentRepo := new(mockpersistence.MockStudentRepository)
	studentRepo.On("GetByBarcode", ctx, "100011").Return(student, nil)

	svc := newScanService(userRepo, studentRepo)

	t.Run("admin may scan a student", func(t *testing.T) {
		res, err := svc.Scan(ctx, Request{Barcode: "100011", CallerRole: "admin", CallerID: 1})

		require.NoError(t, err)
		assert.Equal(t, entity.BarcodeStudent, res.Type)
		assert.Equal(t, "Omar", res.Name)
		assert.Equal(t, int64(320), res.Apples)
		assert.Equal(t, uint64(11), res.StudentID)
	})

	t.Run("assistant may scan a student", func(t *testing.T) {
		res, err := svc.Scan(ctx, Request{Barcode: "100011", CallerRole: "assistant", CallerID: 3})

		require.NoError(t, err)
		assert.Equal(t, entity.BarcodeStudent, res.Type)
	})
}

func TestService_Scan_AssistantBarcode(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)}

	assistant := &entity.User{ID: 5, Name: "Mona", Role: entity.RoleAssistant, Barcode: "300005"}
	assistant.SetApples(900, clock)

	userRepo := new(mockpersistence.MockUserRepository)
	studentRepo := new(mockpersistence.MockStudentRepository)
	userRepo.On("GetByBarcode", ctx, "300005", entity.RoleAssistant).Return(assistant, nil)

	svc := newScanService(userRepo, studentRepo)
	res, err := svc.Scan(ctx, Request{Barcode: "300005", CallerRole: "admin", CallerID: 1})

	require.NoError(t, err)
	assert.Equal(t, entity.BarcodeAssistant, res.Type)
	assert.Equal(t, uint64(5), res.AssistantID)
	assert.Equal(t, int64(900), res.Apples)
}

func TestService_Scan_AdminCheckIn(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)}

	admin := &entity.User{ID: 1, Name: "Hassan", Role: entity.RoleAdmin, SessionsAttended: 20}
	admin.SetApples(3200, clock)

	userRepo := new(mockpersistence.MockUserRepository)
	studentRepo := new(mockpersistence.MockStudentRepository)
	userRepo.On("RecordAttendance", ctx, uint64(1), uint64(1)).Return(&reward.AttendanceResult{
		User:    admin,
		Accrual: reward.Accrue(19),
	}, nil)

	svc := newScanService(userRepo, studentRepo)
	res, err := svc.Scan(ctx, Request{Barcode: "200001", CallerRole: "admin", CallerID: 1})

	require.NoError(t, err)
	assert.Equal(t, entity.BarcodeAdmin, res.Type)
	assert.Equal(t, int64(150), res.ApplesAdded)
	assert.Equal(t, int64(20), res.Sessions)
	userRepo.AssertExpectations(t)
}

func TestService_Scan_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"assistant scanning admin code", Request{Barcode: "200001", CallerRole: "assistant", CallerID: 3}, errs.ErrNotAuthorized},
		{"assistant scanning assistant code", Request{Barcode: "300005", CallerRole: "assistant", CallerID: 3}, errs.ErrNotAuthorized},
		{"unknown prefix", Request{Barcode: "700001", CallerRole: "admin", CallerID: 1}, errs.ErrInvalidBarcode},
		{"missing barcode", Request{CallerRole: "admin", CallerID: 1}, errs.ErrInvalidRequest},
		{"missing role", Request{Barcode: "100011", CallerID: 1}, errs.ErrInvalidRequest},
		{"missing caller", Request{Barcode: "100011", CallerRole: "admin"}, errs.ErrInvalidRequest},
		{"unknown role", Request{Barcode: "100011", CallerRole: "parent", CallerID: 9}, errs.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockpersistence.MockUserRepository)
			studentRepo := new(mockpersistence.MockStudentRepository)
			svc := newScanService(userRepo, studentRepo)

			_, err := svc.Scan(ctx, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			// A rejected scan must not touch storage
			userRepo.AssertNotCalled(t, "RecordAttendance")
			studentRepo.AssertNotCalled(t, "GetByBarcode")
		})
	}
}

func TestService_Scan_StudentNotFound(t *testing.T) {
	ctx := context.Background()

	userRepo := new(mockpersistence.MockUserRepository)
	studentRepo := new(mockpersistence.MockStudentRepository)
	studentRepo.On("GetByBarcode", ctx, "199999").Return(nil, errs.ErrStudentNotFound)

	svc := newScanService(userRepo, studentRepo)
	_, err := svc.Scan(ctx, Request{Barcode: "199999", CallerRole: "assistant", CallerID: 3})

	assert.ErrorIs(t, err, errs.ErrStudentNotFound)
}
