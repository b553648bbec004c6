package core

import "time"

// TimeProvider abstracts the clock so entity timestamps and accrual records
// stay deterministic under test
type TimeProvider interface {
	Now() time.Time
}
