// Package testutil provides deterministic time sources for tests and the
// conformance harness.
package testutil

import (
	"sync"
	"time"
)

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

// NewFixedClock parses an RFC 3339 timestamp and panics if it is invalid.
func NewFixedClock(rfc3339 string) FixedClock {
	at, err := time.Parse(time.RFC3339Nano, rfc3339)
	if err != nil {
		panic(err)
	}
	return FixedClock{At: at}
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.At
}

// StepClock advances by a fixed step on every call, so successive runs get
// distinct but predictable timestamps.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewStepClock creates a clock whose first Now() returns start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{next: start, step: step}
}

// Now returns the current instant and advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}

// Reset rewinds the clock so the next call returns start.
func (c *StepClock) Reset(start time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = start
}
