package timer

import (
	"sync"
	"time"

	"worktimer/internal/core/clock"
)

// Segment is one contiguous running interval folded into the total by Pause.
type Segment struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the segment.
func (segment Segment) Duration() time.Duration {
	return segment.End.Sub(segment.Start)
}

// Options contains optional collaborators for Timer.
type Options struct {
	Clock     clock.Clock
	OnSegment func(Segment)
}

// Timer accumulates elapsed running time across start/pause/reset cycles.
type Timer struct {
	mu          sync.Mutex
	clock       clock.Clock
	onSegment   func(Segment)
	accumulated time.Duration
	startedAt   time.Time
}

// New creates a paused timer with nothing accumulated.
func New(options Options) *Timer {
	if options.Clock == nil {
		options.Clock = clock.System
	}
	return &Timer{
		clock:     options.Clock,
		onSegment: options.OnSegment,
	}
}

// Start begins a running interval. It does nothing if already running.
func (timer *Timer) Start() {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.runningLocked() {
		return
	}
	timer.startedAt = timer.clock.Now()
}

// Pause folds the running interval into the total. It does nothing if paused.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	if !timer.runningLocked() {
		timer.mu.Unlock()
		return
	}
	segment := Segment{Start: timer.startedAt, End: timer.clock.Now()}
	counted := segment.End.After(segment.Start)
	if counted {
		timer.accumulated += segment.Duration()
	}
	timer.startedAt = time.Time{}
	onSegment := timer.onSegment
	timer.mu.Unlock()

	if counted && onSegment != nil {
		onSegment(segment)
	}
}

// Reset zeroes the total and stops the timer. An in-progress interval is
// dropped rather than folded in first.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	timer.accumulated = 0
	timer.startedAt = time.Time{}
	timer.mu.Unlock()
}

// Elapsed returns the accumulated running time including the current interval.
func (timer *Timer) Elapsed() time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if !timer.runningLocked() {
		return timer.accumulated
	}
	current := timer.clock.Now().Sub(timer.startedAt)
	if current < 0 {
		current = 0
	}
	return timer.accumulated + current
}

// IsRunning reports whether a running interval is open.
func (timer *Timer) IsRunning() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.runningLocked()
}

func (timer *Timer) runningLocked() bool {
	return !timer.startedAt.IsZero()
}
