// Package reward holds the reward-accrual rule: how many apples a completed
// attendance session is worth, and when a one-time loyalty bonus is earned.
package reward

import (
	"github.com/nileacademy/apple-rewards/internal/domain/entity"
)

const (
	// BaseSessionValue is the apple value of a session before any milestone
	BaseSessionValue = 150
	// SessionIncrement is the permanent per-milestone session value increase
	SessionIncrement = 20
	// SessionsPerMilestone is the session count of one milestone band
	SessionsPerMilestone = 20
	// MilestoneBonusApples is the one-time credit on first reaching a milestone
	MilestoneBonusApples = 50
)

// SessionValue returns the apple value of the next session for a user who
// has already completed sessionsAttended sessions. The value is a step
// function, flat within each milestone band:
//
//	value = 150 + 20 * floor(sessionsAttended / 20)
func SessionValue(sessionsAttended int64) int64 {
	if sessionsAttended < 0 {
		sessionsAttended = 0
	}
	return BaseSessionValue + SessionIncrement*(sessionsAttended/SessionsPerMilestone)
}

// MilestonesReached returns how many milestones a session count has crossed
func MilestonesReached(sessionsAttended int64) int64 {
	if sessionsAttended < 0 {
		return 0
	}
	return sessionsAttended / SessionsPerMilestone
}

// SessionsUntilNextMilestone returns how many more sessions are needed to
// reach the next milestone. Zero means the count sits exactly on a milestone.
func SessionsUntilNextMilestone(sessionsAttended int64) int64 {
	if sessionsAttended <= 0 {
		return SessionsPerMilestone
	}
	rem := sessionsAttended % SessionsPerMilestone
	if rem == 0 {
		return 0
	}
	return SessionsPerMilestone - rem
}

// Accrual is the outcome of one qualifying attendance session, computed
// from the pre-increment completed-session count.
type Accrual struct {
	SessionValue        int64
	NewSessionsAttended int64
	MilestonesReached   int64
	// BonusType is non-empty when the new session count lands on a
	// milestone; the bonus must still pass the idempotency guard before
	// BonusApples is credited.
	BonusType   string
	BonusApples int64
}

// Accrue computes the accrual for a qualifying session. The session value
// uses the sessions already banked, not the one in progress; the loyalty
// bonus triggers when the incremented count lands on a milestone.
func Accrue(sessionsAttended int64) Accrual {
	if sessionsAttended < 0 {
		sessionsAttended = 0
	}
	newSessions := sessionsAttended + 1

	a := Accrual{
		SessionValue:        SessionValue(sessionsAttended),
		NewSessionsAttended: newSessions,
		MilestonesReached:   MilestonesReached(newSessions),
	}
	if newSessions%SessionsPerMilestone == 0 {
		a.BonusType = entity.BonusTypeForSessions(newSessions)
		a.BonusApples = MilestoneBonusApples
	}
	return a
}
