// Package window opens the SDL2 window that owns the OpenGL context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/engine/input"
	"github.com/Faultbox/planetview/internal/logger"
)

func init() {
	// SDL and GL calls have to stay on the thread that created the context.
	runtime.LockOSThread()
}

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window owns an SDL window and its GL 4.1 core context.
type Window struct {
	handle *sdl.Window
	ctx    sdl.GLContext
	events []input.Event
}

// glAttributes request a 4.1 core context, the newest macOS provides.
var glAttributes = []struct {
	attr  sdl.GLattr
	value int
}{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 24},
}

// New initializes SDL, opens the window and makes its context current.
func New(cfg Config) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("init sdl: %w", err)
	}
	for _, a := range glAttributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("set gl attribute %d: %w", a.attr, err)
		}
	}

	w := &Window{events: make([]input.Event, 0, 16)}
	if err := w.open(cfg); err != nil {
		sdl.Quit()
		return nil, err
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("swap interval not applied", zap.Int("interval", interval), zap.Error(err))
	}
	sdl.StartTextInput()

	width, height := w.DrawableSize()
	logger.Info("window opened",
		zap.String("title", cfg.Title),
		zap.Int32("drawable_width", width),
		zap.Int32("drawable_height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *Window) open(cfg Config) error {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	handle, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), flags)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	ctx, err := handle.GLCreateContext()
	if err != nil {
		handle.Destroy()
		return fmt.Errorf("create gl context: %w", err)
	}

	w.handle, w.ctx = handle, ctx
	return nil
}

// Close tears down the context, the window and SDL.
func (w *Window) Close() {
	sdl.StopTextInput()
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
	}
	if w.handle != nil {
		w.handle.Destroy()
	}
	sdl.Quit()
	logger.Debug("window closed")
}

// DrawableSize returns the framebuffer size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) DrawableSize() (int32, int32) {
	return w.handle.GLGetDrawableSize()
}

// Size returns the window size in points, the unit of pointer events.
func (w *Window) Size() (int32, int32) {
	return w.handle.GetSize()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.handle.GLSwap()
}

// SetTitle replaces the title bar text.
func (w *Window) SetTitle(title string) {
	w.handle.SetTitle(title)
}
