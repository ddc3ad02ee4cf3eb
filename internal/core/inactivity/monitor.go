package inactivity

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"worktimer/internal/core/clock"
	"worktimer/internal/core/model"
)

// Construction errors.
var (
	ErrNilTimer         = errors.New("inactivity monitor requires a timer")
	ErrInvalidThreshold = errors.New("idle threshold must be positive")
)

// TimerControl is the part of a timer the monitor is allowed to drive.
type TimerControl interface {
	Start()
	Pause()
	IsRunning() bool
}

// Options contains optional collaborators for Monitor.
type Options struct {
	Clock         clock.Clock
	Idle          IdleSource
	OnStateChange func()
	Logger        *slog.Logger
}

// Diagnostics is the snapshot computed by the last evaluation.
type Diagnostics struct {
	SystemIdle    time.Duration
	HasSystemIdle bool
	EffectiveIdle time.Duration
	PausedByIdle  bool
	State         State
}

// Monitor pauses a timer after a period of inactivity and resumes it when
// activity returns. Local activity arrives through MarkActivity; the OS idle
// signal is sampled by Evaluate.
type Monitor struct {
	mu            sync.Mutex
	timer         TimerControl
	clock         clock.Clock
	idle          IdleSource
	onStateChange func()
	logger        *slog.Logger

	threshold    time.Duration
	enabled      bool
	lastActivity time.Time
	machine      *stateMachine
	idleFailing  bool

	systemIdle    time.Duration
	hasSystemIdle bool
	effectiveIdle time.Duration

	evaluating atomic.Bool
}

// New binds a monitor to timer. The timer is borrowed, never owned.
func New(timer TimerControl, config model.MonitorConfig, options Options) (*Monitor, error) {
	if timer == nil {
		return nil, ErrNilTimer
	}
	if config.IdleThreshold <= 0 {
		return nil, ErrInvalidThreshold
	}
	if options.Clock == nil {
		options.Clock = clock.System
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	initial := StateManuallyPaused
	if timer.IsRunning() {
		initial = StateActive
	}

	return &Monitor{
		timer:         timer,
		clock:         options.Clock,
		idle:          options.Idle,
		onStateChange: options.OnStateChange,
		logger:        options.Logger,
		threshold:     config.IdleThreshold,
		enabled:       config.IdleEnabled,
		lastActivity:  options.Clock.Now(),
		machine:       newStateMachine(initial, options.Logger),
	}, nil
}

// MarkActivity records local user activity at the given instant (now if zero).
// An auto-paused timer is resumed immediately; a manual pause is left alone.
func (monitor *Monitor) MarkActivity(at time.Time) {
	if at.IsZero() {
		at = monitor.clock.Now()
	}

	monitor.mu.Lock()
	monitor.lastActivity = at
	monitor.reconcileLocked()
	resumed := false
	if monitor.machine.is(StateAutoPaused) {
		monitor.machine.fire(eventWake)
		monitor.timer.Start()
		resumed = true
	}
	monitor.mu.Unlock()

	if resumed {
		monitor.logger.Info("timer resumed on activity")
		monitor.notify()
	}
}

// Evaluate runs one decision step. A call made while another is still in
// flight returns immediately without doing anything. Evaluate never panics.
func (monitor *Monitor) Evaluate(ctx context.Context) {
	if !monitor.evaluating.CompareAndSwap(false, true) {
		return
	}
	defer monitor.evaluating.Store(false)
	defer func() {
		if recovered := recover(); recovered != nil {
			monitor.logger.Error("inactivity evaluation failed", "panic", recovered)
		}
	}()

	now := monitor.clock.Now()

	monitor.mu.Lock()
	source := monitor.idle
	monitor.mu.Unlock()

	var (
		systemIdle    time.Duration
		hasSystemIdle bool
	)
	if source != nil {
		idle, err := queryIdle(ctx, source)
		monitor.recordIdleResult(err)
		if err == nil {
			systemIdle, hasSystemIdle = idle, true
		}
	}

	transition := monitor.decide(now, systemIdle, hasSystemIdle)
	switch transition {
	case StateAutoPaused:
		monitor.logger.Info("timer paused for inactivity", "threshold", monitor.Threshold())
		monitor.notify()
	case StateActive:
		monitor.logger.Info("timer resumed, activity detected")
		monitor.notify()
	}
}

// noTransition is returned by decide when the state is unchanged.
const noTransition State = -1

// decide applies one evaluation and returns the state entered.
func (monitor *Monitor) decide(now time.Time, systemIdle time.Duration, hasSystemIdle bool) State {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()

	if hasSystemIdle && systemIdle < monitor.threshold {
		monitor.lastActivity = now
	}
	sinceActivity := now.Sub(monitor.lastActivity)
	if sinceActivity < 0 {
		sinceActivity = 0
	}
	effective := sinceActivity
	if hasSystemIdle {
		effective = systemIdle
	}

	monitor.systemIdle = systemIdle
	monitor.hasSystemIdle = hasSystemIdle
	monitor.effectiveIdle = effective

	monitor.reconcileLocked()
	if !monitor.enabled {
		return noTransition
	}

	switch monitor.machine.current() {
	case StateActive:
		if effective >= monitor.threshold {
			monitor.timer.Pause()
			monitor.machine.fire(eventIdle)
			return StateAutoPaused
		}
	case StateAutoPaused:
		if effective < monitor.threshold {
			monitor.machine.fire(eventWake)
			monitor.timer.Start()
			monitor.lastActivity = now
			return StateActive
		}
	}
	return noTransition
}

// ClearAutoPause relabels an auto-pause as intentional after the user changed
// the timer directly. It never starts the timer.
func (monitor *Monitor) ClearAutoPause() {
	monitor.mu.Lock()
	monitor.lastActivity = monitor.clock.Now()
	monitor.effectiveIdle = 0
	cleared := monitor.machine.fire(eventRelabel)
	monitor.reconcileLocked()
	monitor.mu.Unlock()

	if cleared {
		monitor.notify()
	}
}

// SetThreshold changes the idle duration that triggers an auto-pause.
// Non-positive values are ignored.
func (monitor *Monitor) SetThreshold(threshold time.Duration) {
	if threshold <= 0 {
		monitor.logger.Warn("ignoring non-positive idle threshold", "threshold", threshold)
		return
	}
	monitor.mu.Lock()
	monitor.threshold = threshold
	monitor.mu.Unlock()
}

// Threshold returns the current idle threshold.
func (monitor *Monitor) Threshold() time.Duration {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.threshold
}

// SetEnabled turns automatic pause and resume on or off.
func (monitor *Monitor) SetEnabled(enabled bool) {
	monitor.mu.Lock()
	monitor.enabled = enabled
	monitor.mu.Unlock()
}

// SetIdleSource replaces the system idle source. Nil means local tracking only.
func (monitor *Monitor) SetIdleSource(source IdleSource) {
	monitor.mu.Lock()
	monitor.idle = source
	monitor.idleFailing = false
	monitor.mu.Unlock()
}

// UpdateConfig applies threshold and enabled flag from config.
func (monitor *Monitor) UpdateConfig(config model.MonitorConfig) {
	monitor.SetThreshold(config.IdleThreshold)
	monitor.SetEnabled(config.IdleEnabled)
}

// IsPausedByInactivity reports whether the timer is paused because of inactivity.
func (monitor *Monitor) IsPausedByInactivity() bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.machine.is(StateAutoPaused)
}

// State returns the current monitor state.
func (monitor *Monitor) State() State {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.machine.current()
}

// Diagnostics returns the last cached snapshot.
func (monitor *Monitor) Diagnostics() Diagnostics {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	state := monitor.machine.current()
	return Diagnostics{
		SystemIdle:    monitor.systemIdle,
		HasSystemIdle: monitor.hasSystemIdle,
		EffectiveIdle: monitor.effectiveIdle,
		PausedByIdle:  state == StateAutoPaused,
		State:         state,
	}
}

// reconcileLocked folds timer changes the user made directly into the machine.
func (monitor *Monitor) reconcileLocked() {
	running := monitor.timer.IsRunning()
	switch {
	case running && !monitor.machine.is(StateActive):
		monitor.machine.fire(eventManualStart)
	case !running && monitor.machine.is(StateActive):
		monitor.machine.fire(eventManualPause)
	}
}

func (monitor *Monitor) recordIdleResult(err error) {
	monitor.mu.Lock()
	wasFailing := monitor.idleFailing
	monitor.idleFailing = err != nil
	monitor.mu.Unlock()

	switch {
	case err != nil && !wasFailing:
		monitor.logger.Warn("idle source failed, using local activity", "error", err)
	case err != nil:
		monitor.logger.Debug("idle source still failing", "error", err)
	case wasFailing:
		monitor.logger.Info("idle source recovered")
	}
}

func (monitor *Monitor) notify() {
	if monitor.onStateChange != nil {
		monitor.onStateChange()
	}
}
