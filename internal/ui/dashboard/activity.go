package dashboard

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// activitySurface sits behind the window content and reports pointer motion
// over everything that does not handle hover itself.
type activitySurface struct {
	widget.BaseWidget
	onActivity func()
}

var _ desktop.Hoverable = (*activitySurface)(nil)

func newActivitySurface(onActivity func()) *activitySurface {
	surface := &activitySurface{onActivity: onActivity}
	surface.ExtendBaseWidget(surface)
	return surface
}

func (surface *activitySurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (surface *activitySurface) MouseIn(*desktop.MouseEvent) {
	surface.fire()
}

func (surface *activitySurface) MouseMoved(*desktop.MouseEvent) {
	surface.fire()
}

func (surface *activitySurface) MouseOut() {}

func (surface *activitySurface) Tapped(*fyne.PointEvent) {
	surface.fire()
}

func (surface *activitySurface) fire() {
	if surface.onActivity != nil {
		surface.onActivity()
	}
}
