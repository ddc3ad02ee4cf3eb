package notice

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	noticeWidthFraction  = float32(0.16)
	noticeHeightFraction = float32(0.14)
	defaultScreenWidth   = float32(1920)
	defaultScreenHeight  = float32(1080)
	backgroundAlpha      = uint8(220)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window is the small undecorated notice shown while the timer is paused
// because the user went away.
type Window struct {
	window     fyne.Window
	icon       *canvas.Image
	titleLabel *canvas.Text
	awayLabel  *canvas.Text
	resume     *widget.Button
	onResume   func()
	visible    bool
}

// New creates a hidden notice window.
func New(app fyne.App, icon fyne.Resource) *Window {
	window := app.NewWindow("WorkTimer")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 24, G: 24, B: 28, A: backgroundAlpha})

	image := canvas.NewImageFromResource(icon)
	image.FillMode = canvas.ImageFillContain
	image.SetMinSize(fyne.NewSize(48, 48))

	titleLabel := canvas.NewText("Paused, you were away", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 16

	awayLabel := canvas.NewText("", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	awayLabel.TextSize = 14

	notice := &Window{
		window:     window,
		icon:       image,
		titleLabel: titleLabel,
		awayLabel:  awayLabel,
	}
	notice.resume = widget.NewButton("Resume", func() {
		if notice.onResume != nil {
			notice.onResume()
		}
	})

	text := container.NewVBox(titleLabel, awayLabel, notice.resume)
	content := container.NewBorder(nil, nil, image, nil, container.NewPadded(text))
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	return notice
}

// SetOnResume sets the Resume handler.
func (notice *Window) SetOnResume(handler func()) {
	notice.onResume = handler
}

// Update shows the notice with the idle duration while away is true and
// hides it otherwise. Must be called on the fyne goroutine.
func (notice *Window) Update(away bool, idle time.Duration) {
	if !away {
		notice.Hide()
		return
	}
	notice.awayLabel.Text = "Idle for " + formatIdle(idle)
	notice.awayLabel.Refresh()
	if notice.visible {
		return
	}
	notice.visible = true
	notice.resizeToScreenFraction()
	notice.window.Show()
}

// Hide closes the notice.
func (notice *Window) Hide() {
	if !notice.visible {
		return
	}
	notice.visible = false
	notice.window.Hide()
}

// Visible reports whether the notice is currently shown.
func (notice *Window) Visible() bool {
	return notice.visible
}

func (notice *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := notice.window.Canvas().Size()
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * noticeWidthFraction
	height := screenSize.Height * noticeHeightFraction
	minSize := notice.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	notice.window.Resize(fyne.NewSize(width, height))
	notice.window.CenterOnScreen()
}

func formatIdle(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value / time.Second)
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds %= 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
