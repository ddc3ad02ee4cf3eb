package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	start := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	manual := NewManual(start)

	assert.Equal(t, start, manual.Now())
	assert.Equal(t, start.Add(time.Minute), manual.Advance(time.Minute))

	later := start.Add(time.Hour)
	manual.Set(later)
	assert.Equal(t, later, manual.Now())
}

func TestSystemClockMovesForward(t *testing.T) {
	first := System.Now()
	second := System.Now()
	assert.False(t, second.Before(first))
}
