package testing

import (
	"sync"
	"time"
)

// ReferenceTime returns the canonical baseline instant used by
// fixtures: Monday morning of week 2025-W43.
func ReferenceTime() time.Time {
	return time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC)
}

// Clock is a controllable time source for tests. Hand NowFunc to the
// WithClock options so staleness and backup timing can be driven
// without sleeping.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock initialised to start. A zero start uses
// ReferenceTime.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}

	return &Clock{current: start}
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

// NowFunc exposes Now as a function suitable for dependency injection.
// A nil clock falls back to time.Now.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}

	return c.Now
}

// Set moves the clock to the provided time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()

	return updated
}
