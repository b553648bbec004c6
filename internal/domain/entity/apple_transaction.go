package entity

import "time"

// Adjustment reasons recorded in the audit trail
const (
	ReasonAttendanceBonus = "Attendance bonus"
	ReasonManualAddition  = "Manual addition"
	ReasonAppleDeduction  = "Apple deduction"
	ReasonLoyaltyBonus    = "Loyalty bonus"
)

// AppleTransaction is one append-only audit record of a balance change.
// Exactly one of UserID or StudentID is set depending on the target entity.
type AppleTransaction struct {
	ID          uint64
	UserID      *uint64
	StudentID   *uint64
	AdminID     uint64
	ApplesAdded int64
	Reason      string
	Reference   string // opaque per-event identifier
	CreatedAt   time.Time
}

// AdjustmentReason picks the audit trail label for a manual delta
func AdjustmentReason(delta int64) string {
	if delta > 0 {
		return ReasonManualAddition
	}
	return ReasonAppleDeduction
}

// UserTransaction builds an audit record targeting a staff user
func UserTransaction(userID, adminID uint64, applesAdded int64, reason, reference string, createdAt time.Time) *AppleTransaction {
	return &AppleTransaction{
		UserID:      &userID,
		AdminID:     adminID,
		ApplesAdded: applesAdded,
		Reason:      reason,
		Reference:   reference,
		CreatedAt:   createdAt,
	}
}

// StudentTransaction builds an audit record targeting a student
func StudentTransaction(studentID, adminID uint64, applesAdded int64, reason, reference string, createdAt time.Time) *AppleTransaction {
	return &AppleTransaction{
		StudentID:   &studentID,
		AdminID:     adminID,
		ApplesAdded: applesAdded,
		Reason:      reason,
		Reference:   reference,
		CreatedAt:   createdAt,
	}
}
