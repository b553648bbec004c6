package entity

import (
	"time"

	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
)

// Student represents a pupil identified by barcode. Students carry an apple
// balance but no session tracking.
type Student struct {
	ID        uint64
	Name      string
	Barcode   string
	apples    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStudent creates a new student with a zero balance
func NewStudent(id uint64, name, barcode string, timeProvider coreport.TimeProvider) *Student {
	now := timeProvider.Now()
	return &Student{
		ID:        id,
		Name:      name,
		Barcode:   barcode,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apples returns the current apple balance
func (s *Student) Apples() int64 {
	return s.apples
}

// SetApples updates the balance directly (for internal use, like repositories)
func (s *Student) SetApples(apples int64, timeProvider coreport.TimeProvider) {
	s.apples = apples
	s.UpdatedAt = timeProvider.Now()
}

// ApplyAdjustment applies a signed manual delta, clamped at zero, and
// returns the number of apples actually applied.
func (s *Student) ApplyAdjustment(delta int64, timeProvider coreport.TimeProvider) int64 {
	newBalance := ClampBalance(s.apples + delta)
	applied := newBalance - s.apples
	s.apples = newBalance
	s.UpdatedAt = timeProvider.Now()
	return applied
}
