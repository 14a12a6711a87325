package clock

import "time"

// Clock supplies the current time. Session timestamps and token expiry all
// flow through it so tests can pin the clock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}
