package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidAmount        = 4001
	CodeInvalidBarcode       = 4002
	CodeInvalidUserID        = 4003
	CodeInvalidRequest       = 4004
	CodeConstraintViolation  = 4005
	CodeInvalidCredentials   = 4010
	CodeNotAuthorized        = 4030
	CodeUserNotFound         = 4040
	CodeStudentNotFound      = 4041
	CodeBonusAlreadyCredited = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidAmount is returned when the apple amount is missing or null
	ErrInvalidAmount = errors.New("invalid apple amount")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidBarcode is returned when a scanned barcode has no recognised prefix
	ErrInvalidBarcode = errors.New("unrecognised barcode prefix")

	// ErrInvalidCredentials is returned when an email/password pair does not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotAuthorized is returned when the caller's role does not permit the action
	ErrNotAuthorized = errors.New("caller is not authorized for this action")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrStudentNotFound is returned when the requested student doesn't exist
	ErrStudentNotFound = errors.New("student not found")

	// ErrBonusAlreadyCredited is returned when a loyalty bonus for the same
	// (user, threshold) pair has already been recorded
	ErrBonusAlreadyCredited = errors.New("loyalty bonus already credited")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidBarcode):
		return CodeInvalidBarcode
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrNotAuthorized):
		return CodeNotAuthorized
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrStudentNotFound):
		return CodeStudentNotFound
	case errors.Is(err, ErrBonusAlreadyCredited):
		return CodeBonusAlreadyCredited
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	default:
		return CodeInternalServer
	}
}

// ScanError represents a rejected barcode scan
type ScanError struct {
	Barcode    string
	CallerRole string
	Err        error
}

// Error implements the error interface for ScanError
func (e *ScanError) Error() string {
	return fmt.Sprintf("scan rejected for role %s (barcode: %s): %v", e.CallerRole, e.Barcode, e.Err)
}

// Unwrap returns the underlying error
func (e *ScanError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ScanError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "scan_error",
		"barcode":     e.Barcode,
		"caller_role": e.CallerRole,
		"error":       e.Err.Error(),
		"error_code":  ErrorCode(e.Err),
	}
}

// NewScanError creates a detailed scan rejection error
func NewScanError(barcode, callerRole string, err error) error {
	return &ScanError{Barcode: barcode, CallerRole: callerRole, Err: err}
}

// BonusError carries context about a failed or skipped loyalty credit
type BonusError struct {
	UserID    uint64
	BonusType string
	Err       error
}

// Error implements the error interface for BonusError
func (e *BonusError) Error() string {
	return fmt.Sprintf("loyalty bonus %s for user %d: %v", e.BonusType, e.UserID, e.Err)
}

// Unwrap returns the underlying error
func (e *BonusError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *BonusError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "bonus_error",
		"user_id":    e.UserID,
		"bonus_type": e.BonusType,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewBonusError creates a detailed loyalty bonus error
func NewBonusError(userID uint64, bonusType string, err error) *BonusError {
	return &BonusError{UserID: userID, BonusType: bonusType, Err: err}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrStudentNotFound)
}

// IsAuthorizationError checks if the error is an authorization failure
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrNotAuthorized)
}

// IsBonusAlreadyCreditedError checks if the error marks a duplicate loyalty credit
func IsBonusAlreadyCreditedError(err error) bool {
	return errors.Is(err, ErrBonusAlreadyCredited)
}
