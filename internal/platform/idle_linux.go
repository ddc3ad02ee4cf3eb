package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"worktimer/internal/core/inactivity"
)

const (
	mutterIdleService = "org.gnome.Mutter.IdleMonitor"
	mutterIdlePath    = "/org/gnome/Mutter/IdleMonitor/Core"
	mutterIdleMethod  = "org.gnome.Mutter.IdleMonitor.GetIdletime"
)

// idleSource prefers xprintidle on X11 and the GNOME Mutter idle monitor on
// Wayland, falling back to the other when the first is unavailable.
type idleSource struct {
	xprintidlePath string

	mu   sync.Mutex
	conn *dbus.Conn
}

func newIdleSource() inactivity.IdleSource {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		path = ""
	}
	return &idleSource{xprintidlePath: path}
}

func (source *idleSource) IdleSeconds(ctx context.Context) (float64, error) {
	wayland := strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) == "wayland"
	if source.xprintidlePath != "" && !wayland {
		return source.xprintidle(ctx)
	}

	seconds, err := source.mutterIdle(ctx)
	if err == nil {
		return seconds, nil
	}
	if source.xprintidlePath != "" {
		return source.xprintidle(ctx)
	}
	return 0, fmt.Errorf("%w: %v", inactivity.ErrIdleUnsupported, err)
}

func (source *idleSource) xprintidle(ctx context.Context) (float64, error) {
	output, err := exec.CommandContext(ctx, source.xprintidlePath).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(output)
}

func (source *idleSource) mutterIdle(ctx context.Context) (float64, error) {
	conn, err := source.sessionBus()
	if err != nil {
		return 0, err
	}

	call := conn.Object(mutterIdleService, dbus.ObjectPath(mutterIdlePath)).
		CallWithContext(ctx, mutterIdleMethod, 0)
	if call.Err != nil {
		return 0, fmt.Errorf("mutter idle monitor: %w", call.Err)
	}
	var idleMillis uint64
	if err := call.Store(&idleMillis); err != nil {
		return 0, fmt.Errorf("mutter idle monitor reply: %w", err)
	}
	return float64(idleMillis) / 1000, nil
}

func (source *idleSource) sessionBus() (*dbus.Conn, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.conn != nil && source.conn.Connected() {
		return source.conn, nil
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	source.conn = conn
	return conn, nil
}
