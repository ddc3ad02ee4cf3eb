package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktimer/internal/core/model"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveLoadSettings(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "WorkTimer")
	want := model.Settings{
		IdleThreshold:  90 * time.Second,
		IdleEnabled:    false,
		PollInterval:   500 * time.Millisecond,
		Autostart:      true,
		ShowIdleNotice: false,
	}

	require.NoError(t, SaveSettings(dir, want))
	got, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsClampsOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	data := []byte("idle_threshold_seconds: 2\npoll_interval_ms: 5\nautostart: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), data, 0o644))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultIdleThreshold, settings.IdleThreshold)
	assert.Equal(t, model.DefaultPollInterval, settings.PollInterval)
	assert.True(t, settings.IdleEnabled, "absent flag keeps its default")
	assert.True(t, settings.ShowIdleNotice)
	assert.True(t, settings.Autostart)
}

func TestLoadSettingsInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte("idle_enabled: [nope"), 0o644))

	settings, err := LoadSettings(dir)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}
