package platform

import (
	"context"
	"fmt"
	"os/exec"

	"worktimer/internal/core/inactivity"
)

type idleSource struct{}

func newIdleSource() inactivity.IdleSource {
	return idleSource{}
}

func (idleSource) IdleSeconds(ctx context.Context) (float64, error) {
	output, err := exec.CommandContext(ctx, "ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseHIDIdleTime(output)
}
