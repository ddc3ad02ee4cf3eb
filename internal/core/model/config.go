package model

import "time"

// Defaults applied when a setting is missing or out of range.
const (
	DefaultIdleThreshold = 5 * time.Minute
	DefaultPollInterval  = 250 * time.Millisecond
)

// Accepted ranges for persisted settings.
const (
	MinIdleThreshold = 10 * time.Second
	MaxIdleThreshold = 4 * time.Hour
	MinPollInterval  = 50 * time.Millisecond
	MaxPollInterval  = 10 * time.Second
)

// MonitorConfig contains runtime settings for the inactivity monitor and its
// evaluation loop.
type MonitorConfig struct {
	IdleThreshold time.Duration
	IdleEnabled   bool
	PollInterval  time.Duration
}

// WithDefaults fills zero or negative durations with defaults.
func (config MonitorConfig) WithDefaults() MonitorConfig {
	if config.IdleThreshold <= 0 {
		config.IdleThreshold = DefaultIdleThreshold
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	return config
}

// Todo is a single entry of the todo list.
type Todo struct {
	ID        int64
	Title     string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DailyTotal is the tracked work time attributed to one calendar day.
type DailyTotal struct {
	Day   time.Time
	Total time.Duration
}
