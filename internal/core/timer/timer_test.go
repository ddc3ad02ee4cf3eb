package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktimer/internal/core/clock"
)

var epoch = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

func newTestTimer() (*Timer, *clock.Manual, *[]Segment) {
	manual := clock.NewManual(epoch)
	segments := &[]Segment{}
	timer := New(Options{
		Clock:     manual,
		OnSegment: func(segment Segment) { *segments = append(*segments, segment) },
	})
	return timer, manual, segments
}

func TestTimerInitialState(t *testing.T) {
	timer, _, _ := newTestTimer()

	assert.False(t, timer.IsRunning())
	assert.Equal(t, time.Duration(0), timer.Elapsed())
}

func TestTimerStartPauseAccumulates(t *testing.T) {
	timer, manual, segments := newTestTimer()

	timer.Start()
	assert.True(t, timer.IsRunning())
	manual.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, timer.Elapsed())

	timer.Pause()
	assert.False(t, timer.IsRunning())
	manual.Advance(10 * time.Second)
	assert.Equal(t, 3*time.Second, timer.Elapsed())

	timer.Start()
	manual.Advance(2 * time.Second)
	assert.Equal(t, 5*time.Second, timer.Elapsed())
	timer.Pause()

	require.Len(t, *segments, 2)
	assert.Equal(t, epoch, (*segments)[0].Start)
	assert.Equal(t, 3*time.Second, (*segments)[0].Duration())
	assert.Equal(t, 2*time.Second, (*segments)[1].Duration())
}

func TestTimerStartIsIdempotent(t *testing.T) {
	timer, manual, _ := newTestTimer()

	timer.Start()
	manual.Advance(time.Second)
	timer.Start()
	manual.Advance(time.Second)

	assert.Equal(t, 2*time.Second, timer.Elapsed())
}

func TestTimerPauseIsIdempotent(t *testing.T) {
	timer, manual, segments := newTestTimer()

	timer.Pause()
	timer.Start()
	manual.Advance(time.Second)
	timer.Pause()
	manual.Advance(time.Second)
	timer.Pause()

	assert.Equal(t, time.Second, timer.Elapsed())
	assert.Len(t, *segments, 1)
}

func TestTimerElapsedMonotonicWhileRunning(t *testing.T) {
	timer, manual, _ := newTestTimer()
	timer.Start()

	previous := timer.Elapsed()
	for i := 0; i < 10; i++ {
		manual.Advance(137 * time.Millisecond)
		current := timer.Elapsed()
		assert.GreaterOrEqual(t, current, previous)
		previous = current
	}
}

func TestTimerElapsedIgnoresClockGoingBackwards(t *testing.T) {
	timer, manual, _ := newTestTimer()
	timer.Start()
	manual.Advance(-time.Second)

	assert.Equal(t, time.Duration(0), timer.Elapsed())
	timer.Pause()
	assert.Equal(t, time.Duration(0), timer.Elapsed())
}

// Reset drops the in-progress interval instead of folding it into the total
// first, unlike Pause. This is deliberate and kept as documented behaviour.
func TestTimerResetDropsRunningInterval(t *testing.T) {
	timer, manual, segments := newTestTimer()

	timer.Start()
	manual.Advance(4 * time.Second)
	timer.Pause()
	timer.Start()
	manual.Advance(6 * time.Second)

	timer.Reset()

	assert.False(t, timer.IsRunning())
	assert.Equal(t, time.Duration(0), timer.Elapsed())
	assert.Len(t, *segments, 1, "reset must not report the dropped interval")

	manual.Advance(time.Minute)
	assert.Equal(t, time.Duration(0), timer.Elapsed())
}

func TestTimerResetWhilePaused(t *testing.T) {
	timer, manual, _ := newTestTimer()

	timer.Start()
	manual.Advance(time.Second)
	timer.Pause()
	timer.Reset()
	timer.Reset()

	assert.Equal(t, time.Duration(0), timer.Elapsed())
	assert.False(t, timer.IsRunning())
}

func TestTimerDefaultsToSystemClock(t *testing.T) {
	timer := New(Options{})
	timer.Start()
	assert.True(t, timer.IsRunning())
	assert.GreaterOrEqual(t, timer.Elapsed(), time.Duration(0))
}
