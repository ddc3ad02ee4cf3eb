package platform

import (
	"context"
	"fmt"
	"syscall"
	"unsafe"

	"worktimer/internal/core/inactivity"
)

var (
	user32               = syscall.NewLazyDLL("user32.dll")
	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount64   = kernel32.NewProc("GetTickCount64")
)

type idleSource struct{}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func newIdleSource() inactivity.IdleSource {
	return idleSource{}
}

func (idleSource) IdleSeconds(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		if err != nil {
			return 0, fmt.Errorf("get last input info: %w", err)
		}
		return 0, fmt.Errorf("get last input info: unknown error")
	}

	tickResult, _, tickErr := procGetTickCount64.Call()
	if tickResult == 0 && tickErr != nil {
		return 0, fmt.Errorf("get tick count: %w", tickErr)
	}

	// dwTime wraps every 49.7 days; compare in the same 32-bit space.
	idleMillis := uint32(tickResult) - info.dwTime
	return float64(idleMillis) / 1000, nil
}
