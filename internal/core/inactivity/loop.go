package inactivity

import (
	"context"
	"sync"
	"time"

	"worktimer/internal/core/model"
)

// Evaluator runs one evaluation step.
type Evaluator interface {
	Evaluate(ctx context.Context)
}

// Loop calls an Evaluator on a fixed interval. Every tick starts the
// evaluation without waiting for it; the evaluator drops ticks that overlap a
// slow one.
type Loop struct {
	mu        sync.Mutex
	evaluator Evaluator
	interval  time.Duration
	running   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	cancel    context.CancelFunc
	inFlight  sync.WaitGroup
}

// NewLoop creates a stopped loop. A non-positive interval uses the default.
func NewLoop(evaluator Evaluator, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = model.DefaultPollInterval
	}
	return &Loop{
		evaluator: evaluator,
		interval:  interval,
	}
}

// Start launches the ticking loop.
func (loop *Loop) Start() {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if loop.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	loop.running = true
	loop.cancel = cancel
	loop.stopCh = make(chan struct{})
	loop.doneCh = make(chan struct{})

	go loop.run(ctx, loop.interval, loop.stopCh, loop.doneCh)
}

// Stop terminates the ticking loop, cancels in-flight evaluations and waits
// for them to return. No evaluation runs once Stop returns.
func (loop *Loop) Stop() {
	loop.mu.Lock()
	if !loop.running {
		loop.mu.Unlock()
		return
	}
	loop.running = false
	close(loop.stopCh)
	loop.cancel()
	doneCh := loop.doneCh
	loop.mu.Unlock()

	<-doneCh
	loop.inFlight.Wait()
}

// Running reports whether the loop is ticking.
func (loop *Loop) Running() bool {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return loop.running
}

func (loop *Loop) run(ctx context.Context, interval time.Duration, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			select {
			case <-stopCh:
				return
			default:
			}
			loop.inFlight.Add(1)
			go func() {
				defer loop.inFlight.Done()
				loop.evaluator.Evaluate(ctx)
			}()
		}
	}
}
