// Package lighting provides the directional sun used to light the planet.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts an azimuth angle in degrees to a unit direction in the XY plane.
// 0 points along +X, 90 along +Y.
func SunDirection(angle float32) mgl32.Vec3 {
	rad := float64(mgl32.DegToRad(angle))
	return mgl32.Vec3{float32(math.Cos(rad)), float32(math.Sin(rad)), 0}
}

// Sun caches the direction derived from its authoritative angle.
type Sun struct {
	Distance float32 // Far enough that the point light reads as directional

	angle     float32
	derived   bool
	direction mgl32.Vec3
}

// NewSun creates a sun at the given angle and distance.
func NewSun(angle, distance float32) *Sun {
	s := &Sun{Distance: distance}
	s.Update(angle)
	return s
}

// Update re-derives the direction when the angle differs from the one it was
// derived for. It reports whether anything changed.
func (s *Sun) Update(angle float32) bool {
	if s.derived && angle == s.angle {
		return false
	}
	s.angle = angle
	s.direction = SunDirection(angle)
	s.derived = true
	return true
}

// Angle returns the angle the direction was derived for.
func (s *Sun) Angle() float32 { return s.angle }

// Direction returns the cached unit direction.
func (s *Sun) Direction() mgl32.Vec3 { return s.direction }

// Position returns the sun position handed to shaders.
func (s *Sun) Position() mgl32.Vec3 { return s.direction.Mul(s.Distance) }
