package model

import "time"

// Settings defines editable user preferences.
type Settings struct {
	IdleThreshold  time.Duration
	IdleEnabled    bool
	PollInterval   time.Duration
	Autostart      bool
	ShowIdleNotice bool
}

// DefaultSettings returns default settings for WorkTimer.
func DefaultSettings() Settings {
	return Settings{
		IdleThreshold:  DefaultIdleThreshold,
		IdleEnabled:    true,
		PollInterval:   DefaultPollInterval,
		Autostart:      false,
		ShowIdleNotice: true,
	}
}

// MonitorConfig converts settings to MonitorConfig.
func (settings Settings) MonitorConfig() MonitorConfig {
	return MonitorConfig{
		IdleThreshold: settings.IdleThreshold,
		IdleEnabled:   settings.IdleEnabled,
		PollInterval:  settings.PollInterval,
	}.WithDefaults()
}
