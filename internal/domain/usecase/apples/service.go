package apples

import (
	"context"
	"fmt"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	"github.com/nileacademy/apple-rewards/internal/domain/port/persistence"
	"github.com/nileacademy/apple-rewards/internal/domain/reward"
	"github.com/nileacademy/apple-rewards/internal/domain/usecase/attendance"
)

// AdjustmentResult is the outcome of a manual apple adjustment or an
// assistant session credit
type AdjustmentResult struct {
	Name                string
	Apples              int64
	ApplesAdded         int64
	SessionsAttended    int64
	CurrentSessionValue int64
	Message             string
}

// Service applies signed apple deltas to students and assistants and runs
// the admin-gated bulk reset
type Service struct {
	userRepo    persistence.UserRepository
	studentRepo persistence.StudentRepository
	attendance  *attendance.Service
	logger      coreport.Logger
}

// NewService creates a new apples service
func NewService(
	userRepo persistence.UserRepository,
	studentRepo persistence.StudentRepository,
	attendanceSvc *attendance.Service,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		attendance:  attendanceSvc,
		logger:      logger,
	}
}

// AddStudentApples applies a signed delta to a student's balance, clamped
// at zero. delta is a pointer so a missing JSON field is rejected rather
// than read as zero.
func (s *Service) AddStudentApples(ctx context.Context, studentID uint64, delta *int64, adminID uint64) (*AdjustmentResult, error) {
	if delta == nil {
		return nil, errs.ErrInvalidAmount
	}

	student, applied, err := s.studentRepo.ApplyAdjustment(ctx, studentID, *delta, adminID, entity.AdjustmentReason(*delta))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student apples adjusted", map[string]any{
		"student_id":  studentID,
		"admin_id":    adminID,
		"delta":       *delta,
		"applied":     applied,
		"new_balance": student.Apples(),
	})

	return &AdjustmentResult{
		Name:        student.Name,
		Apples:      student.Apples(),
		ApplesAdded: *delta,
		Message:     adjustmentMessage(*delta),
	}, nil
}

// AddAssistantApples applies a delta to an assistant. When the caller flags
// the event as qualifying attendance (with a positive amount), the
// reward-accrual rule decides the credited value and the raw amount is
// ignored; otherwise the delta is applied clamped at zero.
func (s *Service) AddAssistantApples(ctx context.Context, assistantID uint64, delta *int64, adminID uint64, isSessionAttendance bool) (*AdjustmentResult, error) {
	if delta == nil {
		return nil, errs.ErrInvalidAmount
	}

	if isSessionAttendance && *delta > 0 {
		result, err := s.attendance.Record(ctx, assistantID, adminID)
		if err != nil {
			return nil, err
		}
		return &AdjustmentResult{
			Name:                result.User.Name,
			Apples:              result.User.Apples(),
			ApplesAdded:         result.ApplesAdded(),
			SessionsAttended:    result.Accrual.NewSessionsAttended,
			CurrentSessionValue: reward.SessionValue(result.Accrual.NewSessionsAttended),
			Message:             attendance.Message(result),
		}, nil
	}

	assistant, applied, err := s.userRepo.ApplyAdjustment(ctx, assistantID, *delta, adminID, entity.AdjustmentReason(*delta))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Assistant apples adjusted", map[string]any{
		"assistant_id": assistantID,
		"admin_id":     adminID,
		"delta":        *delta,
		"applied":      applied,
		"new_balance":  assistant.Apples(),
	})

	return &AdjustmentResult{
		Name:                assistant.Name,
		Apples:              assistant.Apples(),
		ApplesAdded:         *delta,
		SessionsAttended:    assistant.SessionsAttended,
		CurrentSessionValue: reward.SessionValue(assistant.SessionsAttended),
		Message:             adjustmentMessage(*delta),
	}, nil
}

// PayRewards zeroes every assistant's balance. Only admins may trigger it.
func (s *Service) PayRewards(ctx context.Context, callerID uint64) (int64, error) {
	if callerID == 0 {
		return 0, errs.ErrInvalidRequest
	}

	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return 0, err
	}
	if !caller.IsAdmin() {
		s.logger.Warn("Pay-rewards rejected for non-admin caller", map[string]any{
			"caller_id": callerID,
			"role":      caller.Role,
		})
		return 0, errs.ErrNotAuthorized
	}

	reset, err := s.userRepo.ResetAssistantBalances(ctx)
	if err != nil {
		s.logger.Error("Failed to reset assistant balances", map[string]any{
			"caller_id": callerID,
			"error":     err.Error(),
		})
		return 0, err
	}

	s.logger.Info("Assistant balances reset", map[string]any{
		"caller_id": callerID,
		"reset":     reset,
	})
	return reset, nil
}

// adjustmentMessage summarises a manual delta the way the dashboard shows it
func adjustmentMessage(delta int64) string {
	if delta > 0 {
		return fmt.Sprintf("Added %d apples", delta)
	}
	return fmt.Sprintf("Subtracted %d apples", -delta)
}
