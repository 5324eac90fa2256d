// Package config handles viewer configuration loading and validation.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Planet  PlanetConfig  `yaml:"planet"`
	Camera  CameraConfig  `yaml:"camera"`
	Sun     SunConfig     `yaml:"sun"`
	Stars   StarsConfig   `yaml:"stars"`
	Shaders ShadersConfig `yaml:"shaders"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// PlanetConfig holds mesh and rotation settings.
type PlanetConfig struct {
	Radius        float32 `yaml:"radius"`
	Segments      int     `yaml:"segments"`
	CloudScale    float32 `yaml:"cloud_scale"`    // Cloud shell radius relative to the planet, > 1
	RotationSpeed float32 `yaml:"rotation_speed"` // Degrees per second while an arrow key is held
}

// CameraConfig holds projection and placement settings.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	FOV      float32 `yaml:"fov"` // Vertical, degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// SunConfig holds the directional light settings.
type SunConfig struct {
	Angle    float32 `yaml:"angle"`    // Azimuth in degrees
	Distance float32 `yaml:"distance"` // How far the sun sits along its direction
}

// StarsConfig holds starfield settings.
type StarsConfig struct {
	Count     int     `yaml:"count"`
	Seed      uint64  `yaml:"seed"` // 0 means a new sky every run
	Distance  float32 `yaml:"distance"`
	PointSize float32 `yaml:"point_size"`
}

// ShadersConfig holds shader source settings.
type ShadersConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"` // Use filesystem notifications instead of polling every frame
}

// DebugConfig holds debug visualization settings.
type DebugConfig struct {
	LightmapPreview float32 `yaml:"lightmap_preview"` // Fraction of the window used by the lightmap blit, 0 disables
	ScreenshotDir   string  `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Planet",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Planet: PlanetConfig{
			Radius:        1.0,
			Segments:      64,
			CloudScale:    1.02,
			RotationSpeed: 45,
		},
		Camera: CameraConfig{
			Distance: 3.0,
			FOV:      90,
			Near:     0.01,
			Far:      1000,
		},
		Sun: SunConfig{
			Angle:    0,
			Distance: 10000,
		},
		Stars: StarsConfig{
			Count:     4000,
			Seed:      0,
			Distance:  500,
			PointSize: 2,
		},
		Shaders: ShadersConfig{
			Dir:   "shaders",
			Watch: false,
		},
		Debug: DebugConfig{
			LightmapPreview: 0.25,
			ScreenshotDir:   "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
