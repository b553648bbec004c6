package entity

import (
	"time"

	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
)

// Role identifies the kind of staff account
type Role string

const (
	// RoleAdmin can scan any barcode, adjust balances and reset scores
	RoleAdmin Role = "admin"
	// RoleAssistant can only scan student barcodes
	RoleAssistant Role = "assistant"
)

// IsValidRole reports whether s names a known staff role
func IsValidRole(s string) bool {
	return s == string(RoleAdmin) || s == string(RoleAssistant)
}

// User represents a staff account (admin or assistant) with an apple balance
// and a completed-session counter
type User struct {
	ID               uint64
	Name             string
	Email            string
	PasswordHash     string
	Role             Role
	Barcode          string
	apples           int64 // balance is clamped at zero, kept private
	SessionsAttended int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser creates a new staff user with a zero balance
func NewUser(id uint64, name, email, passwordHash string, role Role, barcode string, timeProvider coreport.TimeProvider) (*User, error) {
	if id == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !IsValidRole(string(role)) {
		return nil, errs.ErrInvalidRequest
	}

	now := timeProvider.Now()
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Barcode:      barcode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Apples returns the current apple balance
func (u *User) Apples() int64 {
	return u.apples
}

// SetApples updates the balance directly (for internal use, like repositories)
func (u *User) SetApples(apples int64, timeProvider coreport.TimeProvider) {
	u.apples = apples
	u.UpdatedAt = timeProvider.Now()
}

// ApplyAdjustment applies a signed manual delta to the balance, clamped at
// zero. Returns the number of apples actually applied, which differs from
// delta when a deduction would push the balance negative.
func (u *User) ApplyAdjustment(delta int64, timeProvider coreport.TimeProvider) int64 {
	newBalance := ClampBalance(u.apples + delta)
	applied := newBalance - u.apples
	u.apples = newBalance
	u.UpdatedAt = timeProvider.Now()
	return applied
}

// CreditSession credits a qualifying attendance: the session value is always
// positive so no clamp is needed, and the session counter advances by one.
func (u *User) CreditSession(sessionValue int64, timeProvider coreport.TimeProvider) {
	u.apples += sessionValue
	u.SessionsAttended++
	u.UpdatedAt = timeProvider.Now()
}

// CreditBonus folds a one-time loyalty bonus into the balance
func (u *User) CreditBonus(bonusApples int64, timeProvider coreport.TimeProvider) {
	u.apples += bonusApples
	u.UpdatedAt = timeProvider.Now()
}

// IsAdmin reports whether this user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ClampBalance floors a balance at zero. Manual deductions never push a
// balance negative.
func ClampBalance(balance int64) int64 {
	if balance < 0 {
		return 0
	}
	return balance
}
