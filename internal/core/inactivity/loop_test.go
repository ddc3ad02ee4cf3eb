package inactivity

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktimer/internal/core/model"
)

type countingEvaluator struct {
	calls atomic.Int32
}

func (evaluator *countingEvaluator) Evaluate(context.Context) {
	evaluator.calls.Add(1)
}

type blockingEvaluator struct {
	started   atomic.Int32
	cancelled atomic.Int32
}

func (evaluator *blockingEvaluator) Evaluate(ctx context.Context) {
	evaluator.started.Add(1)
	<-ctx.Done()
	evaluator.cancelled.Add(1)
}

func TestNewLoopDefaultsInterval(t *testing.T) {
	loop := NewLoop(&countingEvaluator{}, 0)
	assert.Equal(t, model.DefaultPollInterval, loop.interval)
}

func TestLoopTicksUntilStopped(t *testing.T) {
	evaluator := &countingEvaluator{}
	loop := NewLoop(evaluator, 5*time.Millisecond)

	loop.Start()
	loop.Start()
	assert.True(t, loop.Running())

	require.Eventually(t, func() bool { return evaluator.calls.Load() >= 3 }, time.Second, time.Millisecond)

	loop.Stop()
	loop.Stop()
	assert.False(t, loop.Running())

	time.Sleep(20 * time.Millisecond)
	settled := evaluator.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, evaluator.calls.Load())
}

func TestLoopRestarts(t *testing.T) {
	evaluator := &countingEvaluator{}
	loop := NewLoop(evaluator, 5*time.Millisecond)

	loop.Start()
	require.Eventually(t, func() bool { return evaluator.calls.Load() >= 1 }, time.Second, time.Millisecond)
	loop.Stop()

	time.Sleep(20 * time.Millisecond)
	before := evaluator.calls.Load()
	loop.Start()
	defer loop.Stop()
	require.Eventually(t, func() bool { return evaluator.calls.Load() > before }, time.Second, time.Millisecond)
}

func TestLoopStopCancelsInFlightEvaluations(t *testing.T) {
	evaluator := &blockingEvaluator{}
	loop := NewLoop(evaluator, 5*time.Millisecond)

	loop.Start()
	require.Eventually(t, func() bool { return evaluator.started.Load() >= 1 }, time.Second, time.Millisecond)
	loop.Stop()

	assert.Equal(t, evaluator.started.Load(), evaluator.cancelled.Load())
}

func TestLoopWithStuckSourceDropsTicks(t *testing.T) {
	var queries atomic.Int32
	source := IdleFunc(func(ctx context.Context) (float64, error) {
		queries.Add(1)
		<-ctx.Done()
		return 0, ctx.Err()
	})
	stub := newStubTimer(true)
	monitor, err := New(stub, model.MonitorConfig{IdleThreshold: time.Hour, IdleEnabled: true}, Options{Idle: source})
	require.NoError(t, err)

	loop := NewLoop(monitor, 2*time.Millisecond)
	loop.Start()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), queries.Load())
	loop.Stop()

	assert.False(t, monitor.evaluating.Load())
	assert.True(t, stub.IsRunning())
}
