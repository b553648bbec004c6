package dashboard

import (
	"context"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	"github.com/nileacademy/apple-rewards/internal/domain/port/persistence"
	"github.com/nileacademy/apple-rewards/internal/domain/reward"
)

// View types for the admin roster projection
const (
	ViewStudents   = "students"
	ViewAssistants = "assistants"
)

// UserView is the per-user dashboard projection
type UserView struct {
	ID                  uint64
	Name                string
	Barcode             string
	Apples              int64
	Role                entity.Role
	Sessions            int64
	CurrentSessionValue int64
	MilestonesReached   int64
	BonusCount          int
	LoyaltyHistory      []*entity.LoyaltyBonus
}

// StudentView is the per-student roster entry
type StudentView struct {
	ID      uint64
	Name    string
	Barcode string
	Apples  int64
}

// RosterView is the admin-wide projection: all rows sorted by balance
// descending plus the balance sum
type RosterView struct {
	ViewType    string
	Assistants  []*UserView
	Students    []*StudentView
	TotalApples int64
}

// Service builds read-only projections of balances, session counts and
// bonus history
type Service struct {
	userRepo    persistence.UserRepository
	studentRepo persistence.StudentRepository
	loyaltyRepo persistence.LoyaltyRepository
	logger      coreport.Logger
}

// NewService creates a new dashboard service
func NewService(
	userRepo persistence.UserRepository,
	studentRepo persistence.StudentRepository,
	loyaltyRepo persistence.LoyaltyRepository,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		loyaltyRepo: loyaltyRepo,
		logger:      logger,
	}
}

// ForUser builds the single-user projection for a (name, role) pair
func (s *Service) ForUser(ctx context.Context, name string, role entity.Role) (*UserView, error) {
	user, err := s.userRepo.GetByNameAndRole(ctx, name, role)
	if err != nil {
		return nil, err
	}
	return s.projectUser(ctx, user)
}

// Roster builds the full admin projection for the requested view type
func (s *Service) Roster(ctx context.Context, viewType string) (*RosterView, error) {
	switch viewType {
	case ViewStudents:
		return s.studentRoster(ctx)
	case ViewAssistants:
		return s.assistantRoster(ctx)
	default:
		return nil, errs.ErrInvalidRequest
	}
}

func (s *Service) studentRoster(ctx context.Context) (*RosterView, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	view := &RosterView{ViewType: ViewStudents, Students: make([]*StudentView, 0, len(students))}
	for _, st := range students {
		view.Students = append(view.Students, &StudentView{
			ID:      st.ID,
			Name:    st.Name,
			Barcode: st.Barcode,
			Apples:  st.Apples(),
		})
		view.TotalApples += st.Apples()
	}
	return view, nil
}

func (s *Service) assistantRoster(ctx context.Context) (*RosterView, error) {
	assistants, err := s.userRepo.ListByRole(ctx, entity.RoleAssistant)
	if err != nil {
		return nil, err
	}

	view := &RosterView{ViewType: ViewAssistants, Assistants: make([]*UserView, 0, len(assistants))}
	for _, a := range assistants {
		uv, err := s.projectUser(ctx, a)
		if err != nil {
			return nil, err
		}
		view.Assistants = append(view.Assistants, uv)
		view.TotalApples += a.Apples()
	}
	return view, nil
}

func (s *Service) projectUser(ctx context.Context, user *entity.User) (*UserView, error) {
	history, err := s.loyaltyRepo.ListByUser(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to load loyalty history", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, err
	}

	return &UserView{
		ID:                  user.ID,
		Name:                user.Name,
		Barcode:             user.Barcode,
		Apples:              user.Apples(),
		Role:                user.Role,
		Sessions:            user.SessionsAttended,
		CurrentSessionValue: reward.SessionValue(user.SessionsAttended),
		MilestonesReached:   reward.MilestonesReached(user.SessionsAttended),
		BonusCount:          len(history),
		LoyaltyHistory:      history,
	}, nil
}
