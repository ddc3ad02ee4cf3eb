package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettingsMonitorConfig(t *testing.T) {
	config := DefaultSettings().MonitorConfig()

	assert.Equal(t, DefaultIdleThreshold, config.IdleThreshold)
	assert.Equal(t, DefaultPollInterval, config.PollInterval)
	assert.True(t, config.IdleEnabled)
}

func TestMonitorConfigWithDefaults(t *testing.T) {
	config := MonitorConfig{IdleThreshold: -time.Second}.WithDefaults()
	assert.Equal(t, DefaultIdleThreshold, config.IdleThreshold)
	assert.Equal(t, DefaultPollInterval, config.PollInterval)
	assert.False(t, config.IdleEnabled)

	kept := MonitorConfig{IdleThreshold: time.Minute, PollInterval: time.Second}.WithDefaults()
	assert.Equal(t, time.Minute, kept.IdleThreshold)
	assert.Equal(t, time.Second, kept.PollInterval)
}
