// Package session ties the work timer, the inactivity monitor and the
// evaluation loop together and exposes the user-facing timer controls.
package session

import (
	"log/slog"
	"sync"
	"time"

	"worktimer/internal/core/clock"
	"worktimer/internal/core/inactivity"
	"worktimer/internal/core/model"
	"worktimer/internal/core/timer"
)

// Options contains optional collaborators for Session.
type Options struct {
	Clock         clock.Clock
	Idle          inactivity.IdleSource
	Logger        *slog.Logger
	OnSegment     func(timer.Segment)
	OnStateChange func()
}

// Snapshot is what the UI renders.
type Snapshot struct {
	Elapsed     time.Duration
	Running     bool
	State       inactivity.State
	Diagnostics inactivity.Diagnostics
	Threshold   time.Duration
}

// Status returns a short human-readable description of the snapshot.
func (snapshot Snapshot) Status() string {
	switch {
	case snapshot.Running:
		return "Running"
	case snapshot.State == inactivity.StateAutoPaused:
		return "Paused (away)"
	default:
		return "Paused"
	}
}

// Session owns one timer and the monitor bound to it.
type Session struct {
	timer   *timer.Timer
	monitor *inactivity.Monitor
	loop    *inactivity.Loop
	logger  *slog.Logger

	mu     sync.Mutex
	events []chan Event
}

// New builds the timer, the monitor and a stopped evaluation loop.
func New(config model.MonitorConfig, options Options) (*Session, error) {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	config = config.WithDefaults()

	session := &Session{logger: options.Logger}
	session.timer = timer.New(timer.Options{
		Clock: options.Clock,
		OnSegment: func(segment timer.Segment) {
			if options.OnSegment != nil {
				options.OnSegment(segment)
			}
			session.emit(Event{
				Type:    EventSegment,
				Elapsed: session.timer.Elapsed(),
				Start:   segment.Start,
				End:     segment.End,
			})
		},
	})
	monitor, err := inactivity.New(session.timer, config, inactivity.Options{
		Clock: options.Clock,
		Idle:  options.Idle,
		OnStateChange: func() {
			if options.OnStateChange != nil {
				options.OnStateChange()
			}
			session.emit(Event{
				Type:    EventStateChange,
				State:   session.monitor.State(),
				Elapsed: session.timer.Elapsed(),
			})
		},
		Logger: options.Logger.With("component", "inactivity"),
	})
	if err != nil {
		return nil, err
	}
	session.monitor = monitor
	session.loop = inactivity.NewLoop(monitor, config.PollInterval)
	return session, nil
}

// Run starts polling the monitor.
func (session *Session) Run() {
	session.loop.Start()
}

// Stop stops polling, folds the running interval into the total and closes
// subscriber channels.
func (session *Session) Stop() {
	session.loop.Stop()
	session.timer.Pause()
	session.closeEvents()
}

// Start is the user's start action.
func (session *Session) Start() {
	session.timer.Start()
	session.monitor.ClearAutoPause()
}

// Pause is the user's pause action. It is never undone by activity.
func (session *Session) Pause() {
	session.timer.Pause()
	session.monitor.ClearAutoPause()
}

// Toggle starts a paused timer and pauses a running one.
func (session *Session) Toggle() {
	if session.timer.IsRunning() {
		session.Pause()
		return
	}
	session.Start()
}

// Reset zeroes the timer and leaves it paused.
func (session *Session) Reset() {
	session.timer.Reset()
	session.monitor.ClearAutoPause()
}

// Activity forwards a local input event to the monitor.
func (session *Session) Activity() {
	session.monitor.MarkActivity(time.Time{})
}

// Apply pushes changed settings into the running monitor.
func (session *Session) Apply(config model.MonitorConfig) {
	session.monitor.UpdateConfig(config.WithDefaults())
}

// SetIdleSource swaps the system idle source.
func (session *Session) SetIdleSource(source inactivity.IdleSource) {
	session.monitor.SetIdleSource(source)
}

// Snapshot reads the current timer and monitor state.
func (session *Session) Snapshot() Snapshot {
	diagnostics := session.monitor.Diagnostics()
	return Snapshot{
		Elapsed:     session.timer.Elapsed(),
		Running:     session.timer.IsRunning(),
		State:       diagnostics.State,
		Diagnostics: diagnostics,
		Threshold:   session.monitor.Threshold(),
	}
}

// Monitor exposes the inactivity monitor.
func (session *Session) Monitor() *inactivity.Monitor {
	return session.monitor
}
