// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// DebugEnv turns on debug output when set to a non-empty value other than "0".
const DebugEnv = "WORKTIMER_DEBUG"

// Options configures the logger.
type Options struct {
	// Verbose enables debug output.
	Verbose bool
	// JSONFormat uses JSON instead of logfmt-style text.
	JSONFormat bool
	// Stderr is the destination (defaults to os.Stderr).
	Stderr io.Writer
}

// Init builds a logger from opts, installs it as the slog default and returns it.
func Init(opts Options) *slog.Logger {
	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Verbose || debugFromEnv() {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSONFormat {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func debugFromEnv() bool {
	value := strings.TrimSpace(os.Getenv(DebugEnv))
	return value != "" && value != "0"
}
