package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/logger"
	mockpersistence "github.com/nileacademy/apple-rewards/mocks/port/persistence"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newDashboardService(
	userRepo *mockpersistence.MockUserRepository,
	studentRepo *mockpersistence.MockStudentRepository,
	loyaltyRepo *mockpersistence.MockLoyaltyRepository,
) *Service {
	return NewService(userRepo, studentRepo, loyaltyRepo, logger.NewNoopLogger())
}

func TestService_ForUser(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)}

	t.Run("projects balance, session value and bonus history", func(t *testing.T) {
		user := &entity.User{ID: 5, Name: "Mona", Role: entity.RoleAssistant, Barcode: "300005", SessionsAttended: 23}
		user.SetApples(3410, clock)
		history := []*entity.LoyaltyBonus{
			{ID: 1, UserID: 5, BonusType: "session_20", BonusApples: 50, CreatedAt: clock.now},
		}

		userRepo := new(mockpersistence.MockUserRepository)
		studentRepo := new(mockpersistence.MockStudentRepository)
		loyaltyRepo := new(mockpersistence.MockLoyaltyRepository)
		userRepo.On("GetByNameAndRole", ctx, "Mona", entity.RoleAssistant).Return(user, nil)
		loyaltyRepo.On("ListByUser", ctx, uint64(5)).Return(history, nil)

		svc := newDashboardService(userRepo, studentRepo, loyaltyRepo)
		view, err := svc.ForUser(ctx, "Mona", entity.RoleAssistant)

		require.NoError(t, err)
		assert.Equal(t, int64(3410), view.Apples)
		assert.Equal(t, int64(23), view.Sessions)
		assert.Equal(t, int64(170), view.CurrentSessionValue)
		assert.Equal(t, int64(1), view.MilestonesReached)
		assert.Equal(t, 1, view.BonusCount)
		assert.Len(t, view.LoyaltyHistory, 1)
	})

	t.Run("unknown name and role yields not found", func(t *testing.T) {
		userRepo := new(mockpersistence.MockUserRepository)
		studentRepo := new(mockpersistence.MockStudentRepository)
		loyaltyRepo := new(mockpersistence.MockLoyaltyRepository)
		userRepo.On("GetByNameAndRole", ctx, "Nobody", entity.RoleAssistant).Return(nil, errs.ErrUserNotFound)

		svc := newDashboardService(userRepo, studentRepo, loyaltyRepo)
		_, err := svc.ForUser(ctx, "Nobody", entity.RoleAssistant)

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		loyaltyRepo.AssertNotCalled(t, "ListByUser")
	})
}

func TestService_Roster(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)}

	t.Run("student roster sums balances", func(t *testing.T) {
		s1 := entity.NewStudent(11, "Omar", "100011", clock)
		s1.SetApples(320, clock)
		s2 := entity.NewStudent(12, "Laila", "100012", clock)
		s2.SetApples(80, clock)

		userRepo := new(mockpersistence.MockUserRepository)
		studentRepo := new(mockpersistence.MockStudentRepository)
		loyaltyRepo := new(mockpersistence.MockLoyaltyRepository)
		studentRepo.On("List", ctx).Return([]*entity.Student{s1, s2}, nil)

		svc := newDashboardService(userRepo, studentRepo, loyaltyRepo)
		view, err := svc.Roster(ctx, ViewStudents)

		require.NoError(t, err)
		assert.Len(t, view.Students, 2)
		assert.Equal(t, int64(400), view.TotalApples)
	})

	t.Run("assistant roster carries projections and total", func(t *testing.T) {
		a1 := &entity.User{ID: 5, Name: "Mona", Role: entity.RoleAssistant, SessionsAttended: 20}
		a1.SetApples(3000, clock)
		a2 := &entity.User{ID: 6, Name: "Tarek", Role: entity.RoleAssistant, SessionsAttended: 2}
		a2.SetApples(300, clock)

		userRepo := new(mockpersistence.MockUserRepository)
		studentRepo := new(mockpersistence.MockStudentRepository)
		loyaltyRepo := new(mockpersistence.MockLoyaltyRepository)
		userRepo.On("ListByRole", ctx, entity.RoleAssistant).Return([]*entity.User{a1, a2}, nil)
		loyaltyRepo.On("ListByUser", ctx, uint64(5)).Return([]*entity.LoyaltyBonus{
			{ID: 1, UserID: 5, BonusType: "session_20", BonusApples: 50},
		}, nil)
		loyaltyRepo.On("ListByUser", ctx, uint64(6)).Return([]*entity.LoyaltyBonus{}, nil)

		svc := newDashboardService(userRepo, studentRepo, loyaltyRepo)
		view, err := svc.Roster(ctx, ViewAssistants)

		require.NoError(t, err)
		require.Len(t, view.Assistants, 2)
		assert.Equal(t, int64(3300), view.TotalApples)
		assert.Equal(t, int64(170), view.Assistants[0].CurrentSessionValue)
		assert.Equal(t, 1, view.Assistants[0].BonusCount)
		assert.Equal(t, int64(150), view.Assistants[1].CurrentSessionValue)
	})

	t.Run("unknown view type is invalid", func(t *testing.T) {
		userRepo := new(mockpersistence.MockUserRepository)
		studentRepo := new(mockpersistence.MockStudentRepository)
		loyaltyRepo := new(mockpersistence.MockLoyaltyRepository)

		svc := newDashboardService(userRepo, studentRepo, loyaltyRepo)
		_, err := svc.Roster(ctx, "teachers")

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}
