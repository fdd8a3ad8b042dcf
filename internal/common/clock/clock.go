package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the subset of clockwork.Clock the services depend on.
// Tests pass clockwork.NewFakeClockAt.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// New returns the system clock
func New() Clock {
	return clockwork.NewRealClock()
}
