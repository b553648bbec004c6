package persistence

import (
	"context"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	"github.com/nileacademy/apple-rewards/internal/domain/reward"
)

// UserRepository defines storage operations for staff users (admins and
// assistants)
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by email, used by the login flow
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByBarcode retrieves a user with the given barcode and role,
	// used by the scan flow
	GetByBarcode(ctx context.Context, barcode string, role entity.Role) (*entity.User, error)

	// GetByNameAndRole retrieves a user by display name and role, used by
	// the dashboard's single-user projection
	GetByNameAndRole(ctx context.Context, name string, role entity.Role) (*entity.User, error)

	// ListByRole returns all users with the given role sorted by apple
	// balance descending
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// Create creates a new user. Used by seeding.
	//
	// Possible errors:
	// - ErrDuplicateUser: If a user with the same email or barcode exists
	Create(ctx context.Context, user *entity.User) error

	// ApplyAdjustment applies a signed manual delta to the user's balance,
	// clamped at zero, and appends the audit record in the same database
	// transaction. Returns the updated user and the applied delta.
	ApplyAdjustment(ctx context.Context, userID uint64, delta int64, adminID uint64, reason string) (*entity.User, int64, error)

	// RecordAttendance credits one qualifying session under the
	// reward-accrual rule: balance update, session counter increment,
	// audit append and the conditional loyalty credit all commit in one
	// database transaction. The (user_id, bonus_type) uniqueness guard
	// decides whether the bonus is credited.
	RecordAttendance(ctx context.Context, userID uint64, adminID uint64) (*reward.AttendanceResult, error)

	// ResetAssistantBalances zeroes every assistant's balance and returns
	// how many rows were affected
	ResetAssistantBalances(ctx context.Context) (int64, error)
}
