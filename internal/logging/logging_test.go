package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitText(t *testing.T) {
	t.Setenv(DebugEnv, "")
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := Init(Options{Stderr: &buf})
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "key=value")
}

func TestInitVerboseJSON(t *testing.T) {
	t.Setenv(DebugEnv, "")
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := Init(Options{Verbose: true, JSONFormat: true, Stderr: &buf})
	logger.Debug("details", "n", 3)

	assert.Contains(t, buf.String(), `"msg":"details"`)
	assert.Contains(t, buf.String(), `"n":3`)
}

func TestInitDebugFromEnv(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	for value, want := range map[string]bool{"1": true, "yes": true, "0": false} {
		t.Setenv(DebugEnv, value)
		var buf bytes.Buffer
		Init(Options{Stderr: &buf}).Debug("probe")
		assert.Equal(t, want, bytes.Contains(buf.Bytes(), []byte("probe")), value)
	}
}
