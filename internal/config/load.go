package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/planetview/internal/engine/sphere"
)

// The camera may zoom from just outside the cloud shell out to a quarter of the far plane.
const (
	zoomMargin      = 1.05
	zoomFarFraction = 4
)

// EnvFile names an environment variable holding an explicit config path.
// When set, the file must exist.
const EnvFile = "PLANETVIEW_CONFIG"

// Load returns the defaults overlaid with the first config file found:
// $PLANETVIEW_CONFIG, then ./config.yaml, then config.yaml in ConfigDir.
// Finding no file is not an error.
func Load() (*Config, error) {
	if path := os.Getenv(EnvFile); path != "" {
		return LoadFile(path)
	}
	return LoadFile(findConfigFile())
}

// LoadFile overlays the given file on the defaults and validates the result.
// An empty path yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// decodeFile merges YAML into cfg. Keys that match no setting are rejected
// so a typo does not silently fall back to a default.
func decodeFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first setting the renderer cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Planet.Radius <= 0:
		return fmt.Errorf("planet.radius %g must be positive", c.Planet.Radius)
	case c.Planet.Segments > sphere.MaxSegments:
		return fmt.Errorf("planet.segments %d exceeds %d", c.Planet.Segments, sphere.MaxSegments)
	case c.Planet.CloudScale <= 1:
		return fmt.Errorf("planet.cloud_scale %g must be greater than 1", c.Planet.CloudScale)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera.fov %g must be between 0 and 180", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip range %g..%g is invalid", c.Camera.Near, c.Camera.Far)
	case c.Camera.Distance <= c.Planet.Radius*c.Planet.CloudScale:
		return fmt.Errorf("camera.distance %g is inside the cloud shell", c.Camera.Distance)
	case c.Planet.Radius*c.Planet.CloudScale*zoomMargin >= c.Camera.Far/zoomFarFraction:
		lo, hi := c.ZoomRange()
		return fmt.Errorf("zoom range %g..%g is empty; raise camera.far or shrink the planet", lo, hi)
	case c.Sun.Distance <= 0:
		return fmt.Errorf("sun.distance %g must be positive", c.Sun.Distance)
	case c.Stars.Count < 0:
		return fmt.Errorf("stars.count %d must not be negative", c.Stars.Count)
	case c.Stars.Distance >= c.Camera.Far:
		return fmt.Errorf("stars.distance %g is beyond camera.far %g", c.Stars.Distance, c.Camera.Far)
	case c.Shaders.Dir == "":
		return errors.New("shaders.dir must be set")
	case c.Debug.LightmapPreview < 0 || c.Debug.LightmapPreview > 1:
		return fmt.Errorf("debug.lightmap_preview %g must be within [0, 1]", c.Debug.LightmapPreview)
	}
	return nil
}

// ZoomRange returns the camera distances scroll zoom moves between.
func (c *Config) ZoomRange() (lo, hi float32) {
	return c.Planet.Radius * c.Planet.CloudScale * zoomMargin, c.Camera.Far / zoomFarFraction
}

func findConfigFile() string {
	for _, path := range []string{"config.yaml", filepath.Join(ConfigDir(), "config.yaml")} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for the viewer.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "PlanetView")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "PlanetView")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "planetview")
	}
	return filepath.Join(home, ".config", "planetview")
}
