package dashboard

import (
	"fmt"
	"time"

	"worktimer/internal/core/inactivity"
	"worktimer/internal/core/session"
)

// FormatElapsed renders a duration as HH:MM:SS.
func FormatElapsed(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int64(value / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

func formatTotal(value time.Duration) string {
	if value <= 0 {
		return "-"
	}
	minutes := int64(value / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func formatDiagnostics(snapshot session.Snapshot) string {
	diagnostics := snapshot.Diagnostics
	system := "n/a"
	if diagnostics.HasSystemIdle {
		system = fmt.Sprintf("%.0fs", diagnostics.SystemIdle.Seconds())
	}
	return fmt.Sprintf("System idle %s, effective idle %.0fs of %s",
		system, diagnostics.EffectiveIdle.Seconds(), snapshot.Threshold)
}

func stateLabel(state inactivity.State) string {
	switch state {
	case inactivity.StateActive:
		return "Tracking"
	case inactivity.StateAutoPaused:
		return "Paused while you were away"
	default:
		return "Paused by you"
	}
}
