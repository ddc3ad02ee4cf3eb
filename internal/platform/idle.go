package platform

import "worktimer/internal/core/inactivity"

// NewIdleSource returns the idle source for the running OS. Sources that
// cannot work on this system report inactivity.ErrIdleUnsupported.
func NewIdleSource() inactivity.IdleSource {
	return newIdleSource()
}
