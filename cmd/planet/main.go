// Package main is the entry point for the planet viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/config"
	"github.com/Faultbox/planetview/internal/engine/renderer"
	"github.com/Faultbox/planetview/internal/engine/screenshot"
	"github.com/Faultbox/planetview/internal/engine/shader"
	"github.com/Faultbox/planetview/internal/engine/window"
	"github.com/Faultbox/planetview/internal/logger"
	"github.com/Faultbox/planetview/internal/planet"
	"github.com/Faultbox/planetview/internal/ui"
)

func main() {
	if err := run(); err != nil {
		logger.Error("planet viewer failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("=== Planet Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer win.Close()

	width, height := win.DrawableSize()
	rend, err := renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		PointSize:  cfg.Stars.PointSize,
		ClearColor: [4]float32{0, 0, 0, 1},
	})
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Close()

	shaders, err := planet.LoadShaders(cfg.Shaders.Dir, shader.OSSource{}, rend)
	if err != nil {
		return err
	}
	defer shaders.Release()

	if cfg.Shaders.Watch {
		watcher, err := shader.NewWatcher(planet.ShaderPaths(cfg.Shaders.Dir)...)
		if err != nil {
			// Polling still works without notifications.
			logger.Warn("shader watch unavailable, polling instead", zap.Error(err))
		} else {
			defer watcher.Close()
			shaders.Watch(watcher)
		}
	}

	// The overlay lays out in window points, the unit of pointer events.
	pointW, pointH := win.Size()
	overlay, err := ui.NewOverlay(int(pointW), int(pointH), cfg.Sun.Angle)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	defer overlay.Close()

	session, err := planet.NewSession(planet.NewSettings(cfg), rend, shaders, overlay)
	if err != nil {
		return err
	}

	app := &planet.App{
		Window:      win,
		Session:     session,
		Title:       cfg.Window.Title,
		Pixels:      rend,
		Screenshots: screenshot.New(cfg.Debug.ScreenshotDir, "planet"),
	}
	if err := app.Run(); err != nil {
		return err
	}

	logger.Info("viewer closed normally")
	return nil
}
