package session

import (
	"time"

	"worktimer/internal/core/inactivity"
)

// EventType defines the type of session event.
type EventType string

const (
	// EventStateChange is sent when the monitor pauses or resumes the timer
	// or drops the away label.
	EventStateChange EventType = "state_change"
	// EventSegment is sent when a worked interval is folded into the total.
	EventSegment EventType = "segment"
)

// Event is a session update for observers.
type Event struct {
	Type    EventType
	State   inactivity.State
	Elapsed time.Duration
	Start   time.Time
	End     time.Time
}

// Subscribe registers a new observer channel. Events are dropped for a
// subscriber whose buffer is full. Channels are closed by Stop.
func (session *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	session.mu.Lock()
	session.events = append(session.events, ch)
	session.mu.Unlock()
	return ch
}

func (session *Session) emit(event Event) {
	session.mu.Lock()
	defer session.mu.Unlock()
	for _, ch := range session.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (session *Session) closeEvents() {
	session.mu.Lock()
	events := session.events
	session.events = nil
	session.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}
