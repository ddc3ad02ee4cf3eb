package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"worktimer/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	IdleThresholdSeconds int   `yaml:"idle_threshold_seconds"`
	IdleEnabled          *bool `yaml:"idle_enabled"`
	PollIntervalMillis   int   `yaml:"poll_interval_ms,omitempty"`
	Autostart            bool  `yaml:"autostart"`
	ShowIdleNotice       *bool `yaml:"show_idle_notice"`
}

// LoadSettings reads user preferences from dir/settings.yaml.
// If the file does not exist, default settings are returned.
func LoadSettings(dir string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to dir/settings.yaml.
func SaveSettings(dir string, settings model.Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	idleEnabled := settings.IdleEnabled
	showNotice := settings.ShowIdleNotice
	fileData := yamlSettings{
		IdleThresholdSeconds: int(settings.IdleThreshold / time.Second),
		IdleEnabled:          &idleEnabled,
		Autostart:            settings.Autostart,
		ShowIdleNotice:       &showNotice,
	}
	if settings.PollInterval != model.DefaultPollInterval {
		fileData.PollIntervalMillis = int(settings.PollInterval / time.Millisecond)
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	threshold := time.Duration(fileData.IdleThresholdSeconds) * time.Second
	if threshold >= model.MinIdleThreshold && threshold <= model.MaxIdleThreshold {
		settings.IdleThreshold = threshold
	}

	poll := time.Duration(fileData.PollIntervalMillis) * time.Millisecond
	if poll >= model.MinPollInterval && poll <= model.MaxPollInterval {
		settings.PollInterval = poll
	}

	if fileData.IdleEnabled != nil {
		settings.IdleEnabled = *fileData.IdleEnabled
	}
	if fileData.ShowIdleNotice != nil {
		settings.ShowIdleNotice = *fileData.ShowIdleNotice
	}
	settings.Autostart = fileData.Autostart
}
