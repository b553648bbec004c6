package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	"github.com/nileacademy/apple-rewards/internal/domain/reward"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/logger"
	mockpersistence "github.com/nileacademy/apple-rewards/mocks/port/persistence"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func attendedUser(id uint64, apples, sessions int64) *entity.User {
	u := &entity.User{ID: id, Name: "Mona", Role: entity.RoleAssistant, SessionsAttended: sessions}
	u.SetApples(apples, &fixedClock{now: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)})
	return u
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("records a session through the repository", func(t *testing.T) {
		repo := new(mockpersistence.MockUserRepository)
		result := &reward.AttendanceResult{
			User:    attendedUser(7, 1150, 20),
			Accrual: reward.Accrue(19),
		}
		repo.On("RecordAttendance", ctx, uint64(7), uint64(1)).Return(result, nil)

		svc := NewService(repo, logger.NewNoopLogger())
		got, err := svc.Record(ctx, 7, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(150), got.Accrual.SessionValue)
		assert.Equal(t, int64(20), got.Accrual.NewSessionsAttended)
		repo.AssertExpectations(t)
	})

	t.Run("rejects zero user ID without touching storage", func(t *testing.T) {
		repo := new(mockpersistence.MockUserRepository)

		svc := NewService(repo, logger.NewNoopLogger())
		_, err := svc.Record(ctx, 0, 1)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		repo.AssertNotCalled(t, "RecordAttendance")
	})

	t.Run("propagates not-found from the repository", func(t *testing.T) {
		repo := new(mockpersistence.MockUserRepository)
		repo.On("RecordAttendance", ctx, uint64(42), uint64(1)).Return(nil, errs.ErrUserNotFound)

		svc := NewService(repo, logger.NewNoopLogger())
		_, err := svc.Record(ctx, 42, 1)

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestMessage(t *testing.T) {
	t.Run("includes bonus when newly credited", func(t *testing.T) {
		result := &reward.AttendanceResult{
			User:          attendedUser(7, 1200, 20),
			Accrual:       reward.Accrue(19),
			BonusCredited: true,
		}

		msg := Message(result)

		assert.Contains(t, msg, "+200 apples")
		assert.Contains(t, msg, "Session 20")
		assert.Contains(t, msg, "50 loyalty bonus")
		assert.Contains(t, msg, "Value increased!")
	})

	t.Run("omits bonus when guard suppressed it", func(t *testing.T) {
		result := &reward.AttendanceResult{
			User:    attendedUser(7, 1150, 20),
			Accrual: reward.Accrue(19),
		}

		msg := Message(result)

		assert.Contains(t, msg, "+150 apples")
		assert.NotContains(t, msg, "loyalty bonus")
	})

	t.Run("counts down to the next milestone", func(t *testing.T) {
		result := &reward.AttendanceResult{
			User:    attendedUser(7, 2000, 21),
			Accrual: reward.Accrue(20),
		}

		msg := Message(result)

		assert.Contains(t, msg, "19 more sessions until value increases to 190!")
	})
}
