package inactivity

import (
	"context"
	"log/slog"

	"github.com/looplab/fsm"
)

// State is the monitor's view of why the timer is or is not running.
type State int

const (
	// StateActive means the timer is running.
	StateActive State = iota
	// StateAutoPaused means the monitor paused the timer because of inactivity.
	StateAutoPaused
	// StateManuallyPaused means the timer was paused by the user and is left alone.
	StateManuallyPaused
)

// String returns the state name.
func (state State) String() string {
	switch state {
	case StateActive:
		return "active"
	case StateAutoPaused:
		return "auto_paused"
	case StateManuallyPaused:
		return "manually_paused"
	default:
		return "unknown"
	}
}

func stateFromName(name string) State {
	switch name {
	case "active":
		return StateActive
	case "auto_paused":
		return StateAutoPaused
	default:
		return StateManuallyPaused
	}
}

const (
	eventIdle        = "idle"
	eventWake        = "wake"
	eventRelabel     = "relabel"
	eventManualStart = "manual_start"
	eventManualPause = "manual_pause"
)

// stateMachine wraps the fsm so callers only ever see the three legal states.
// Running while auto-paused has no representation.
type stateMachine struct {
	machine *fsm.FSM
	logger  *slog.Logger
}

func newStateMachine(initial State, logger *slog.Logger) *stateMachine {
	sm := &stateMachine{logger: logger}
	sm.machine = fsm.NewFSM(
		initial.String(),
		fsm.Events{
			{Name: eventIdle, Src: []string{StateActive.String()}, Dst: StateAutoPaused.String()},
			{Name: eventWake, Src: []string{StateAutoPaused.String()}, Dst: StateActive.String()},
			{Name: eventRelabel, Src: []string{StateAutoPaused.String()}, Dst: StateManuallyPaused.String()},
			{Name: eventManualStart, Src: []string{StateManuallyPaused.String(), StateAutoPaused.String()}, Dst: StateActive.String()},
			{Name: eventManualPause, Src: []string{StateActive.String()}, Dst: StateManuallyPaused.String()},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("inactivity state changed", "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)
	return sm
}

func (sm *stateMachine) current() State {
	return stateFromName(sm.machine.Current())
}

func (sm *stateMachine) is(state State) bool {
	return sm.machine.Is(state.String())
}

func (sm *stateMachine) fire(event string) bool {
	if !sm.machine.Can(event) {
		return false
	}
	if err := sm.machine.Event(context.Background(), event); err != nil {
		sm.logger.Error("inactivity transition rejected", "event", event, "state", sm.machine.Current(), "error", err)
		return false
	}
	return true
}
