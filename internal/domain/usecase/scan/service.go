package scan

import (
	"context"
	"errors"
	"fmt"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	"github.com/nileacademy/apple-rewards/internal/domain/port/persistence"
	"github.com/nileacademy/apple-rewards/internal/domain/usecase/attendance"
)

// Request is one barcode scan performed by a logged-in staff member
type Request struct {
	Barcode    string
	CallerRole string
	CallerID   uint64
}

// Result is the classification outcome of a scan. For an admin self
// check-in the attendance accrual has already been applied.
type Result struct {
	Type        entity.BarcodeType
	Name        string
	Apples      int64
	StudentID   uint64
	AssistantID uint64
	ApplesAdded int64
	Sessions    int64
	BonusApples int64
	Message     string
}

// Service classifies barcodes and dispatches the matching lookup or
// check-in, enforcing the role scan policy
type Service struct {
	userRepo    persistence.UserRepository
	studentRepo persistence.StudentRepository
	attendance  *attendance.Service
	logger      coreport.Logger
}

// NewService creates a new scan service
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

// Scan processes one barcode scan
func (s *Service) Scan(ctx context.Context, req Request) (*Result, error) {
	if req.Barcode == "" || req.CallerRole == "" || req.CallerID == 0 {
		return nil, errs.ErrInvalidRequest
	}
	if !entity.IsValidRole(req.CallerRole) {
		return nil, errs.ErrInvalidRequest
	}
	callerRole := entity.Role(req.CallerRole)

	target, err := entity.ClassifyBarcode(req.Barcode)
	if err != nil {
		return nil, errs.NewScanError(req.Barcode, req.CallerRole, err)
	}

	if !entity.CanScan(callerRole, target) {
		s.logger.Warn("Scan rejected by role policy", map[string]any{
			"caller_id":   req.CallerID,
			"caller_role": req.CallerRole,
			"target":      target,
		})
		return nil, errs.NewScanError(req.Barcode, req.CallerRole, errs.ErrNotAuthorized)
	}

	switch target {
	case entity.BarcodeStudent:
		return s.scanStudent(ctx, req.Barcode)
	case entity.BarcodeAssistant:
		return s.scanAssistant(ctx, req.Barcode)
	case entity.BarcodeAdmin:
		return s.checkInAdmin(ctx, req.CallerID)
	default:
		return nil, errs.NewScanError(req.Barcode, req.CallerRole, errs.ErrInvalidBarcode)
	}
}

func (s *Service) scanStudent(ctx context.Context, barcode string) (*Result, error) {
	student, err := s.studentRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return &Result{
		Type:      entity.BarcodeStudent,
		Name:      student.Name,
		Apples:    student.Apples(),
		StudentID: student.ID,
		Message:   fmt.Sprintf("Student found: %s", student.Name),
	}, nil
}

func (s *Service) scanAssistant(ctx context.Context, barcode string) (*Result, error) {
	assistant, err := s.userRepo.GetByBarcode(ctx, barcode, entity.RoleAssistant)
	if err != nil {
		return nil, err
	}
	return &Result{
		Type:        entity.BarcodeAssistant,
		Name:        assistant.Name,
		Apples:      assistant.Apples(),
		AssistantID: assistant.ID,
		Message:     fmt.Sprintf("Assistant found: %s", assistant.Name),
	}, nil
}

// checkInAdmin records a qualifying session for the calling admin. The
// scanned code only marks the action; the target is the caller.
func (s *Service) checkInAdmin(ctx context.Context, callerID uint64) (*Result, error) {
	result, err := s.attendance.Record(ctx, callerID, callerID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}

	res := &Result{
		Type:        entity.BarcodeAdmin,
		Name:        result.User.Name,
		Apples:      result.User.Apples(),
		ApplesAdded: result.ApplesAdded(),
		Sessions:    result.Accrual.NewSessionsAttended,
		Message:     attendance.Message(result),
	}
	if result.BonusCredited {
		res.BonusApples = result.Accrual.BonusApples
	}
	return res, nil
}
