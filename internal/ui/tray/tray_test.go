package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLineFollowsState(t *testing.T) {
	manager := New(nil, Icons{}, Callbacks{})
	assert.Equal(t, "Worked: 00:00:00 (paused)", manager.statusItem.Label)
	assert.Equal(t, "Start", manager.toggleItem.Label)

	manager.SetStatus("00:12:00")
	manager.SetState(true, false)
	assert.Equal(t, "Worked: 00:12:00", manager.statusItem.Label)
	assert.Equal(t, "Pause", manager.toggleItem.Label)

	manager.SetState(false, true)
	assert.Equal(t, "Worked: 00:12:00 (away)", manager.statusItem.Label)
	assert.Equal(t, "Start", manager.toggleItem.Label)
}

func TestMenuItemsInvokeCallbacks(t *testing.T) {
	toggled, reset := 0, 0
	manager := New(nil, Icons{}, Callbacks{
		OnToggle: func() { toggled++ },
		OnReset:  func() { reset++ },
	})

	manager.toggleItem.Action()
	manager.resetItem.Action()
	manager.resetItem.Action()

	assert.Equal(t, 1, toggled)
	assert.Equal(t, 2, reset)
}
