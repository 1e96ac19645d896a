package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/competeinator/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Each call to Now advances the clock by Step, so timestamps taken in
// sequence are distinct and ordered.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	Step    time.Duration
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time that does not move
// on its own
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// NewSteppingClock creates a MockClock that moves forward by step after every read
func NewSteppingClock(t time.Time, step time.Duration) *MockClock {
	return &MockClock{current: t, Step: step}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.Step)
	return now
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
