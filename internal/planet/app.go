package planet

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/engine/input"
	"github.com/Faultbox/planetview/internal/logger"
)

// Window is the platform window the app presents into. DrawableSize is in
// framebuffer pixels; Size is in window points, the unit of pointer events.
// They differ on high-DPI displays.
type Window interface {
	PollEvents() []input.Event
	DrawableSize() (int32, int32)
	Size() (int32, int32)
	SwapBuffers()
	SetTitle(title string)
}

// PixelReader reads back the finished frame as bottom-up RGBA rows.
type PixelReader interface {
	ReadPixels(width, height int32) []byte
}

// Screenshots saves captured frames.
type Screenshots interface {
	Save(pixels []byte, width, height int) (string, error)
}

// App drives a session against a window until the session ends.
type App struct {
	Window  Window
	Session *Session
	Title   string

	// Optional; both must be set for screenshots to be taken
	Pixels      PixelReader
	Screenshots Screenshots

	// Now defaults to time.Now
	Now func() time.Time
}

// Run is the frame loop: poll, frame, present, and refresh the title once a second.
func (a *App) Run() error {
	if a.Window == nil || a.Session == nil {
		return errors.New("app needs a window and a session")
	}
	now := a.Now
	if now == nil {
		now = time.Now
	}

	logger.Info("starting frame loop")

	frameCount := 0
	var titleTimer time.Time
	for {
		t := now()
		events := a.Window.PollEvents()
		width, height := a.Window.DrawableSize()
		a.Session.SetOverlaySize(a.Window.Size())

		if !a.Session.Frame(t, events, width, height) {
			logger.Info("frame loop finished")
			return nil
		}
		if a.Session.ScreenshotRequested() {
			a.screenshot(width, height)
		}
		a.Window.SwapBuffers()

		frameCount++
		if titleTimer.IsZero() {
			titleTimer = t
		}
		if t.Sub(titleTimer) >= time.Second {
			stats := a.Session.Stats()
			a.Window.SetTitle(stats.Title(a.Title))
			logger.Debug("fps",
				zap.Int("frames", frameCount),
				zap.Duration("avg_frame", stats.AvgFrameTime),
			)
			frameCount = 0
			titleTimer = t
		}
	}
}

// screenshot captures the back buffer before it is presented. Failures are logged only.
func (a *App) screenshot(width, height int32) {
	if a.Pixels == nil || a.Screenshots == nil || width <= 0 || height <= 0 {
		return
	}
	path, err := a.Screenshots.Save(a.Pixels.ReadPixels(width, height), int(width), int(height))
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
