package attendance

import (
	"context"
	"fmt"

	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	"github.com/nileacademy/apple-rewards/internal/domain/port/persistence"
	"github.com/nileacademy/apple-rewards/internal/domain/reward"
)

// Service records qualifying attendance sessions through the reward-accrual
// rule. Both the admin self check-in (scan) and the assistant attendance
// flow (add-apples with the attendance flag) end up here.
type Service struct {
	userRepo persistence.UserRepository
	logger   coreport.Logger
}

// NewService creates a new attendance service
func NewService(userRepo persistence.UserRepository, logger coreport.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Record credits one qualifying session for userID, acted by adminID.
// The storage layer commits the balance change, counter increment, audit
// row and any loyalty credit atomically.
func (s *Service) Record(ctx context.Context, userID, adminID uint64) (*reward.AttendanceResult, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	result, err := s.userRepo.RecordAttendance(ctx, userID, adminID)
	if err != nil {
		s.logger.Error("Failed to record attendance", map[string]any{
			"user_id":  userID,
			"admin_id": adminID,
			"error":    err.Error(),
		})
		return nil, err
	}

	fields := map[string]any{
		"user_id":       userID,
		"session_value": result.Accrual.SessionValue,
		"sessions":      result.Accrual.NewSessionsAttended,
		"milestones":    result.Accrual.MilestonesReached,
		"new_balance":   result.User.Apples(),
	}
	if result.BonusCredited {
		fields["bonus_type"] = result.Accrual.BonusType
		fields["bonus_apples"] = result.Accrual.BonusApples
	}
	s.logger.Info("Attendance recorded", fields)

	return result, nil
}

// Message renders the user-facing summary of a recorded session, including
// the distance to the next milestone
func Message(result *reward.AttendanceResult) string {
	a := result.Accrual
	msg := fmt.Sprintf("Session recorded! +%d apples (Session %d, value %d)",
		result.ApplesAdded(), a.NewSessionsAttended, a.SessionValue)

	if result.BonusCredited {
		msg += fmt.Sprintf(" + %d loyalty bonus", a.BonusApples)
	}

	until := reward.SessionsUntilNextMilestone(a.NewSessionsAttended)
	switch {
	case until == 0:
		msg += fmt.Sprintf(" - Value increased! Next session worth %d apples!",
			reward.SessionValue(a.NewSessionsAttended))
	case until < reward.SessionsPerMilestone:
		plural := ""
		if until > 1 {
			plural = "s"
		}
		msg += fmt.Sprintf(" - %d more session%s until value increases to %d!",
			until, plural, reward.SessionValue(a.NewSessionsAttended)+reward.SessionIncrement)
	}
	return msg
}
