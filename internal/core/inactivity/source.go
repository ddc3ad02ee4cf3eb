package inactivity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// ErrInvalidIdleValue is reported when a source returns a negative or non-finite value.
var ErrInvalidIdleValue = errors.New("invalid idle value")

// IdleSource reports how many seconds have passed since the last system-wide input.
type IdleSource interface {
	IdleSeconds(ctx context.Context) (float64, error)
}

// IdleFunc adapts a function to IdleSource.
type IdleFunc func(ctx context.Context) (float64, error)

// IdleSeconds calls fn.
func (fn IdleFunc) IdleSeconds(ctx context.Context) (float64, error) {
	return fn(ctx)
}

const maxIdleSeconds = float64(math.MaxInt64 / int64(time.Second))

// queryIdle asks the source for idle time and turns panics and untrustworthy
// values into errors.
func queryIdle(ctx context.Context, source IdleSource) (idle time.Duration, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			idle = 0
			err = fmt.Errorf("idle source panicked: %v", recovered)
		}
	}()

	seconds, err := source.IdleSeconds(ctx)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidIdleValue, seconds)
	}
	if seconds >= maxIdleSeconds {
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
