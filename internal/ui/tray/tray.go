package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Icons are the tray icons for each timer state.
type Icons struct {
	Running fyne.Resource
	Paused  fyne.Resource
	Away    fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	icons       Icons
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	resetItem   *fyne.MenuItem
	running     bool
	away        bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		icons:       icons,
		callbacks:   callbacks,
		statusLabel: "00:00:00",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	manager.refreshStatus()
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
	manager.refreshMenu()
}

// SetState updates the toggle label and the icon.
func (manager *Manager) SetState(running, away bool) {
	if running == manager.running && away == manager.away {
		return
	}
	manager.running = running
	manager.away = away
	if running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.refreshStatus()
	manager.refreshMenu()
	manager.refreshIcon()
}

func (manager *Manager) refreshStatus() {
	suffix := ""
	switch {
	case manager.away:
		suffix = " (away)"
	case !manager.running:
		suffix = " (paused)"
	}
	manager.statusItem.Label = fmt.Sprintf("Worked: %s%s", manager.statusLabel, suffix)
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Paused
	switch {
	case manager.running:
		icon = manager.icons.Running
	case manager.away:
		icon = manager.icons.Away
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("WorkTimer",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
