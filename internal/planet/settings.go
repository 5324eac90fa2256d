// Package planet implements the render session: the per-frame pipeline that
// advances time, hot-reloads shaders, folds input into rotation and sun state,
// and drives the shadow and composite passes.
package planet

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/planetview/internal/config"
)

// Settings are the tuning values a session is built from.
type Settings struct {
	Radius        float32
	Segments      int
	CloudScale    float32 // > 1 so the shell encloses the planet
	RotationSpeed float32 // Radians per second

	CameraDistance float32
	FOV            float32 // Degrees
	Near, Far      float32
	ZoomMin        float32 // Scroll zoom range; a zero ZoomMax fixes the distance
	ZoomMax        float32

	SunAngle    float32 // Degrees
	SunDistance float32

	StarCount    int
	StarSeed     uint64
	StarDistance float32

	LightmapPreview float32
}

// NewSettings converts the loaded configuration.
func NewSettings(cfg *config.Config) Settings {
	zoomMin, zoomMax := cfg.ZoomRange()
	return Settings{
		Radius:          cfg.Planet.Radius,
		Segments:        cfg.Planet.Segments,
		CloudScale:      cfg.Planet.CloudScale,
		RotationSpeed:   mgl32.DegToRad(cfg.Planet.RotationSpeed),
		CameraDistance:  cfg.Camera.Distance,
		FOV:             cfg.Camera.FOV,
		Near:            cfg.Camera.Near,
		Far:             cfg.Camera.Far,
		ZoomMin:         zoomMin,
		ZoomMax:         zoomMax,
		SunAngle:        cfg.Sun.Angle,
		SunDistance:     cfg.Sun.Distance,
		StarCount:       cfg.Stars.Count,
		StarSeed:        cfg.Stars.Seed,
		StarDistance:    cfg.Stars.Distance,
		LightmapPreview: cfg.Debug.LightmapPreview,
	}
}
