package reward

import "github.com/nileacademy/apple-rewards/internal/domain/entity"

// AttendanceResult is what one qualifying attendance actually did once the
// idempotency guard had its say.
type AttendanceResult struct {
	User    *entity.User
	Accrual Accrual
	// BonusCredited is true only when the accrual carried a bonus AND the
	// (user, threshold) guard row did not yet exist
	BonusCredited bool
}

// ApplesAdded returns the total apples credited by this attendance,
// including the loyalty bonus when one was newly earned
func (r *AttendanceResult) ApplesAdded() int64 {
	total := r.Accrual.SessionValue
	if r.BonusCredited {
		total += r.Accrual.BonusApples
	}
	return total
}
