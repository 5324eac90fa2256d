// Package camera provides the fixed viewer camera looking at the planet.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera sits on the +Z axis looking at the origin.
type Camera struct {
	Distance float32 // Distance from the planet center
	FOV      float32 // Vertical field of view, degrees
	Near     float32
	Far      float32

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	ZoomSensitivity float32
}

// New creates a camera with the given placement and clip range.
func New(distance, fov, near, far float32) *Camera {
	return &Camera{
		Distance:        distance,
		FOV:             fov,
		Near:            near,
		Far:             far,
		MinDistance:     distance,
		MaxDistance:     distance,
		ZoomSensitivity: 0.1,
	}
}

// Aspect returns width/height, or 1 when the height is zero (minimized window).
func Aspect(width, height int32) float32 {
	if height <= 0 || width <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Projection returns the perspective matrix for the current framebuffer size.
func (c *Camera) Projection(width, height int32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), Aspect(width, height), c.Near, c.Far)
}

// View returns the view matrix: the world pushed away from the eye along -Z.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -c.Distance)
}

// SetZoomRange allows HandleZoom to move the camera between lo and hi.
// The range is widened to include the current distance, so setting it never
// moves the camera.
func (c *Camera) SetZoomRange(lo, hi float32) {
	c.MinDistance = min(lo, c.Distance)
	c.MaxDistance = max(hi, c.Distance)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *Camera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

func (c *Camera) clamp() {
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
