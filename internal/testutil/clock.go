package testutil

import (
	"sync"
	"time"
)

// FixedClock is a wall clock for tests that only moves when told to.
//
// It satisfies interp.Clock, so "days to birthday" results are reproducible
// regardless of when the test runs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
}

// NewFixedClock creates a clock reading now.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{start: now, now: now}
}

// NewFixedClockOn creates a clock reading midnight UTC of an ISO date.
// It panics on a malformed date.
func NewFixedClockOn(date string) *FixedClock {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("testutil: bad clock date " + date + ": " + err.Error())
	}
	return NewFixedClock(t)
}

// Now returns the current reading.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// AdvanceDays moves the clock forward by n calendar days (backwards when
// n is negative).
func (c *FixedClock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}

// Reset returns the clock to its initial reading.
func (c *FixedClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
