package persistence

import (
	"context"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
)

// StudentRepository defines storage operations for students
type StudentRepository interface {
	// GetByID retrieves a student by ID
	//
	// Possible errors:
	// - ErrStudentNotFound: If student with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Student, error)

	// GetByBarcode retrieves a student by barcode, used by the scan flow
	GetByBarcode(ctx context.Context, barcode string) (*entity.Student, error)

	// List returns all students sorted by apple balance descending
	List(ctx context.Context) ([]*entity.Student, error)

	// Create creates a new student. Used by seeding.
	Create(ctx context.Context, student *entity.Student) error

	// ApplyAdjustment applies a signed manual delta to the student's
	// balance, clamped at zero, and appends the audit record in the same
	// database transaction. Returns the updated student and the applied
	// delta.
	ApplyAdjustment(ctx context.Context, studentID uint64, delta int64, adminID uint64, reason string) (*entity.Student, int64, error)
}
