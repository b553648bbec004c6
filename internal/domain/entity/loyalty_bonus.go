package entity

import (
	"fmt"
	"time"
)

// LoyaltyBonus is one append-only record of a one-time threshold credit.
// At most one row may exist per (UserID, BonusType) pair; that uniqueness
// is the idempotency guard against double-crediting a milestone.
type LoyaltyBonus struct {
	ID          uint64
	UserID      uint64
	BonusType   string
	BonusApples int64
	CreatedAt   time.Time
}

// BonusTypeForSessions returns the threshold label for a session count,
// e.g. "session_20" for the twentieth completed session.
func BonusTypeForSessions(sessions int64) string {
	return fmt.Sprintf("session_%d", sessions)
}
