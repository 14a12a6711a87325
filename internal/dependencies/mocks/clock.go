package mocks

import (
	"time"

	"github.com/odogan/champguess-go/internal/dependencies/clock"
)

// MockClock holds a fixed time that tests move explicitly, for pinning
// session timestamps and token expiry.
type MockClock struct {
	CurrentTime time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock pinned to t
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the pinned time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set pins the clock to t
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
