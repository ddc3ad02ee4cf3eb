// Package dashboard is the main WorkTimer window: the running total, the
// timer controls, the todo list and the recent daily totals.
package dashboard

import (
	"log/slog"
	"strings"
	"time"

	"worktimer/internal/core/model"
	"worktimer/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// StatsDays is the number of days shown in the totals panel.
const StatsDays = 7

// Controller is the timer surface the dashboard drives.
type Controller interface {
	Start()
	Pause()
	Reset()
	Activity()
	Snapshot() session.Snapshot
}

// Store persists todos and reports recorded work.
type Store interface {
	AddTodo(title string) (model.Todo, error)
	ListTodos() ([]model.Todo, error)
	SetTodoDone(id int64, done bool) error
	DeleteTodo(id int64) error
	DailyTotals(until time.Time, days int) ([]model.DailyTotal, error)
}

// Window is the dashboard window.
type Window struct {
	window     fyne.Window
	controller Controller
	store      Store
	logger     *slog.Logger

	elapsed     *widget.Label
	state       *widget.Label
	diagnostics *widget.Label
	startButton *widget.Button
	pauseButton *widget.Button
	todoEntry   *widget.Entry
	todoList    *widget.List
	dayLabels   []*widget.Label
	dayBars     []*widget.ProgressBar

	todos []model.Todo
}

// New creates a hidden dashboard window.
func New(app fyne.App, controller Controller, store Store, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	dashboard := &Window{
		window:     app.NewWindow("WorkTimer"),
		controller: controller,
		store:      store,
		logger:     logger,
	}

	dashboard.elapsed = widget.NewLabelWithStyle("00:00:00", fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true})
	dashboard.state = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	dashboard.diagnostics = widget.NewLabel("")
	dashboard.diagnostics.Importance = widget.LowImportance

	dashboard.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), dashboard.activity(controller.Start))
	dashboard.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), dashboard.activity(controller.Pause))
	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), dashboard.activity(controller.Reset))
	controls := container.NewHBox(layout.NewSpacer(), dashboard.startButton, dashboard.pauseButton, resetButton, layout.NewSpacer())

	timerPanel := container.NewVBox(dashboard.elapsed, dashboard.state, controls, dashboard.diagnostics)

	content := container.NewAppTabs(
		container.NewTabItem("Todos", dashboard.buildTodos()),
		container.NewTabItem("Last 7 days", dashboard.buildStats()),
	)

	root := container.NewBorder(timerPanel, nil, nil, nil, content)
	dashboard.window.SetContent(container.NewStack(newActivitySurface(controller.Activity), root))
	dashboard.window.Resize(fyne.NewSize(420, 520))
	dashboard.window.SetCloseIntercept(dashboard.window.Hide)

	onKey := func(*fyne.KeyEvent) { controller.Activity() }
	dashboard.window.Canvas().SetOnTypedKey(onKey)
	dashboard.window.Canvas().SetOnTypedRune(func(rune) { controller.Activity() })

	dashboard.Refresh()
	return dashboard
}

// Window exposes the underlying fyne window.
func (dashboard *Window) Window() fyne.Window {
	return dashboard.window
}

// Show displays the dashboard and reloads persisted data.
func (dashboard *Window) Show() {
	dashboard.ReloadTodos()
	dashboard.RefreshStats()
	dashboard.Refresh()
	dashboard.window.Show()
	dashboard.window.RequestFocus()
}

// Refresh redraws the timer panel from a fresh snapshot.
func (dashboard *Window) Refresh() {
	snapshot := dashboard.controller.Snapshot()
	dashboard.elapsed.SetText(FormatElapsed(snapshot.Elapsed))
	dashboard.state.SetText(stateLabel(snapshot.State))
	dashboard.diagnostics.SetText(formatDiagnostics(snapshot))
	if snapshot.Running {
		dashboard.startButton.Disable()
		dashboard.pauseButton.Enable()
	} else {
		dashboard.startButton.Enable()
		dashboard.pauseButton.Disable()
	}
}

func (dashboard *Window) activity(action func()) func() {
	return func() {
		dashboard.controller.Activity()
		action()
		dashboard.Refresh()
	}
}

func (dashboard *Window) buildTodos() fyne.CanvasObject {
	dashboard.todoEntry = widget.NewEntry()
	dashboard.todoEntry.SetPlaceHolder("New todo")
	dashboard.todoEntry.OnChanged = func(string) { dashboard.controller.Activity() }
	dashboard.todoEntry.OnSubmitted = func(string) { dashboard.addTodo() }
	addButton := widget.NewButtonWithIcon("", theme.ContentAddIcon(), dashboard.addTodo)

	dashboard.todoList = widget.NewList(
		func() int { return len(dashboard.todos) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
				widget.NewCheck("", nil))
		},
		dashboard.updateTodoRow,
	)

	entryRow := container.NewBorder(nil, nil, nil, addButton, dashboard.todoEntry)
	return container.NewBorder(entryRow, nil, nil, nil, dashboard.todoList)
}

func (dashboard *Window) updateTodoRow(id widget.ListItemID, object fyne.CanvasObject) {
	if id < 0 || id >= len(dashboard.todos) {
		return
	}
	todo := dashboard.todos[id]
	row := object.(*fyne.Container)

	var check *widget.Check
	var remove *widget.Button
	for _, child := range row.Objects {
		switch typed := child.(type) {
		case *widget.Check:
			check = typed
		case *widget.Button:
			remove = typed
		}
	}
	if check == nil || remove == nil {
		return
	}

	check.OnChanged = nil
	check.Text = todo.Title
	check.SetChecked(todo.Done)
	check.Refresh()
	check.OnChanged = func(done bool) {
		dashboard.controller.Activity()
		if err := dashboard.store.SetTodoDone(todo.ID, done); err != nil {
			dashboard.logger.Warn("update todo", "id", todo.ID, "error", err)
		}
		dashboard.ReloadTodos()
	}
	remove.OnTapped = func() {
		dashboard.controller.Activity()
		if err := dashboard.store.DeleteTodo(todo.ID); err != nil {
			dashboard.logger.Warn("delete todo", "id", todo.ID, "error", err)
		}
		dashboard.ReloadTodos()
	}
}

func (dashboard *Window) addTodo() {
	dashboard.controller.Activity()
	title := strings.TrimSpace(dashboard.todoEntry.Text)
	if title == "" {
		return
	}
	if _, err := dashboard.store.AddTodo(title); err != nil {
		dashboard.logger.Warn("add todo", "error", err)
		return
	}
	dashboard.todoEntry.SetText("")
	dashboard.ReloadTodos()
}

// ReloadTodos reads the todo list from the store.
func (dashboard *Window) ReloadTodos() {
	todos, err := dashboard.store.ListTodos()
	if err != nil {
		dashboard.logger.Warn("list todos", "error", err)
		return
	}
	dashboard.todos = todos
	dashboard.todoList.Refresh()
}

func (dashboard *Window) buildStats() fyne.CanvasObject {
	rows := container.NewVBox()
	for i := 0; i < StatsDays; i++ {
		label := widget.NewLabel("")
		bar := widget.NewProgressBar()
		dashboard.dayLabels = append(dashboard.dayLabels, label)
		dashboard.dayBars = append(dashboard.dayBars, bar)
		rows.Add(container.NewBorder(nil, nil, label, nil, bar))
	}
	refresh := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), dashboard.activity(dashboard.RefreshStats))
	return container.NewBorder(nil, container.NewHBox(layout.NewSpacer(), refresh), nil, nil, rows)
}

// RefreshStats reloads the daily totals for the last StatsDays days.
func (dashboard *Window) RefreshStats() {
	totals, err := dashboard.store.DailyTotals(time.Now(), StatsDays)
	if err != nil {
		dashboard.logger.Warn("load daily totals", "error", err)
		return
	}

	scale := barScale(totals)
	for index := range dashboard.dayBars {
		label := dashboard.dayLabels[index]
		bar := dashboard.dayBars[index]
		if index >= len(totals) {
			label.SetText("")
			bar.SetValue(0)
			continue
		}
		total := totals[index]
		label.SetText(total.Day.Format("Mon 02 Jan"))
		text := formatTotal(total.Total)
		bar.TextFormatter = func() string { return text }
		bar.Max = scale.Hours()
		bar.SetValue(total.Total.Hours())
	}
}

// barScale returns the full-bar duration: the largest total rounded up to a
// whole hour, at least one hour.
func barScale(totals []model.DailyTotal) time.Duration {
	largest := time.Hour
	for _, total := range totals {
		if total.Total > largest {
			largest = total.Total
		}
	}
	return largest.Truncate(time.Hour) + roundUpHour(largest)
}

func roundUpHour(value time.Duration) time.Duration {
	if value%time.Hour == 0 {
		return 0
	}
	return time.Hour
}
