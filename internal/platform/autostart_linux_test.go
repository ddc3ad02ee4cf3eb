package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopFileName(t *testing.T) {
	assert.Equal(t, "work-timer.desktop", desktopFileName(" Work Timer "))
	assert.Equal(t, "worktimer.desktop", desktopFileName(""))
}

func TestBuildDesktopEntryQuotesPathsWithSpaces(t *testing.T) {
	entry := buildDesktopEntry("WorkTimer", "/opt/work timer/worktimer")
	assert.Contains(t, entry, `Exec="/opt/work timer/worktimer" --background`)
	assert.Contains(t, entry, "Name=WorkTimer")
}

func TestEnableDisableAutostart(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	require.NoError(t, service.EnableAutostart("WorkTimer", "/usr/bin/worktimer"))
	path := filepath.Join(configDir, "autostart", "worktimer.desktop")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Exec=/usr/bin/worktimer --background")

	enabled, err := service.AutostartEnabled("WorkTimer")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, service.DisableAutostart("WorkTimer"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	enabled, err = service.AutostartEnabled("WorkTimer")
	require.NoError(t, err)
	assert.False(t, enabled)
	require.NoError(t, service.DisableAutostart("WorkTimer"))

	assert.Error(t, service.EnableAutostart("", "/usr/bin/worktimer"))
	assert.Error(t, service.EnableAutostart("WorkTimer", ""))
}
