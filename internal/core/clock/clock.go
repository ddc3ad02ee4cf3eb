// Package clock abstracts time sampling so the timer and the inactivity
// monitor can be driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System is the wall clock.
var System Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Manual is a clock that only moves when told to.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a manual clock positioned at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual instant.
func (manual *Manual) Now() time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.now
}

// Set moves the clock to the given instant.
func (manual *Manual) Set(now time.Time) {
	manual.mu.Lock()
	manual.now = now
	manual.mu.Unlock()
}

// Advance moves the clock forward by delta and returns the new instant.
func (manual *Manual) Advance(delta time.Duration) time.Time {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.now = manual.now.Add(delta)
	return manual.now
}
