package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"worktimer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    model.Settings
	onSave      func(model.Settings)
	threshold   *widget.Entry
	idleCheck   *widget.Check
	noticeCheck *widget.Check
	autostart   *widget.Check
	errorLabel  *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("WorkTimer Settings")

	threshold := widget.NewEntry()
	idleCheck := widget.NewCheck("Pause automatically when I'm away", nil)
	noticeCheck := widget.NewCheck("Show a notice while paused for inactivity", nil)
	autostart := widget.NewCheck("Start WorkTimer at login", nil)
	errorLabel := widget.NewLabel("")
	errorLabel.Hide()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Inactivity", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		idleCheck,
		container.NewHBox(widget.NewLabel("Away after"), threshold, widget.NewLabel("sec")),
		noticeCheck,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		autostart,
		errorLabel,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 260))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		threshold:   threshold,
		idleCheck:   idleCheck,
		noticeCheck: noticeCheck,
		autostart:   autostart,
		errorLabel:  errorLabel,
	}
	idleCheck.OnChanged = func(enabled bool) {
		if enabled {
			threshold.Enable()
		} else {
			threshold.Disable()
		}
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.threshold.SetText(formatSeconds(settings.IdleThreshold))
	prefs.idleCheck.SetChecked(settings.IdleEnabled)
	prefs.noticeCheck.SetChecked(settings.ShowIdleNotice)
	prefs.autostart.SetChecked(settings.Autostart)
	prefs.errorLabel.Hide()
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	seconds, err := parseThreshold(prefs.threshold.Text)
	if err != nil {
		prefs.errorLabel.SetText(err.Error())
		prefs.errorLabel.Show()
		return
	}
	settings.IdleThreshold = seconds
	settings.IdleEnabled = prefs.idleCheck.Checked
	settings.ShowIdleNotice = prefs.noticeCheck.Checked
	settings.Autostart = prefs.autostart.Checked

	prefs.settings = settings
	prefs.errorLabel.Hide()
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func formatSeconds(value time.Duration) string {
	return strconv.Itoa(int(value / time.Second))
}

func parseThreshold(value string) (time.Duration, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("threshold must be a positive number of seconds")
	}
	threshold := time.Duration(parsed) * time.Second
	if threshold < model.MinIdleThreshold || threshold > model.MaxIdleThreshold {
		return 0, fmt.Errorf("threshold must be between %d and %d seconds",
			int(model.MinIdleThreshold/time.Second), int(model.MaxIdleThreshold/time.Second))
	}
	return threshold, nil
}
