// Package scene describes the planet's draw calls and sequences them into the
// shadow pass and the composite pass. It never touches the graphics API itself;
// a Device executes the calls.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/planetview/internal/engine/sphere"
)

// CullMode selects which winding is discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullClockwise
	CullCounterClockwise
)

// BlendMode selects how fragments combine with the target.
type BlendMode int

const (
	BlendNone BlendMode = iota
	BlendAlpha
)

// DepthTest selects the depth comparison.
type DepthTest int

const (
	DepthNone DepthTest = iota
	DepthLess
)

// DrawParams is the fixed-function state of one draw.
type DrawParams struct {
	Cull       CullMode
	Blend      BlendMode
	Depth      DepthTest
	DepthWrite bool
}

var (
	// Opaque keeps the outward-facing shell and writes depth.
	Opaque = DrawParams{Cull: CullClockwise, Depth: DepthLess, DepthWrite: true}
	// ShellInside keeps the far, inward-facing half of a translucent shell.
	ShellInside = DrawParams{Cull: CullCounterClockwise, Blend: BlendAlpha, Depth: DepthLess}
	// ShellOutside keeps the near, outward-facing half of a translucent shell.
	ShellOutside = DrawParams{Cull: CullClockwise, Blend: BlendAlpha, Depth: DepthLess}
	// Points draws unculled points behind everything else.
	Points = DrawParams{Cull: CullNone, Depth: DepthLess}
)

// Geometry selects an uploaded buffer.
type Geometry int

const (
	GeometrySphere Geometry = iota // Indexed triangles
	GeometryStars                  // Unindexed points
)

// Target selects a render target.
type Target int

const (
	TargetLightmap Target = iota
	TargetScreen
)

// Uniforms are the per-draw shader inputs.
type Uniforms struct {
	MV       mgl32.Mat4
	P        mgl32.Mat4
	SunPos   mgl32.Vec3
	Time     float32
	Viewport mgl32.Vec2
	Lightmap bool // Bind the lightmap texture for sampling
}

// DrawCall is one draw submitted to a Device.
type DrawCall struct {
	Name     string
	Geometry Geometry
	Program  uint32
	Uniforms Uniforms
	Params   DrawParams
}

// Device executes draw calls. Uploads happen once; the rest every frame.
type Device interface {
	UploadSphere(mesh sphere.Mesh) error
	UploadStars(stars []mgl32.Vec3) error
	BeginPass(target Target, width, height int32)
	Draw(call DrawCall)
	// BlitLightmap copies the lightmap into the screen. fraction is the share of
	// the screen the copy covers; 0 skips it.
	BlitLightmap(width, height int32, fraction float32)
}

// Programs holds the program handle for every shader unit.
type Programs struct {
	Planet       uint32
	PlanetShadow uint32
	Cloud        uint32
	CloudShadow  uint32
	Star         uint32
}

// Frame is everything the passes need for one frame.
type Frame struct {
	Width, Height   int32
	Time            float32
	Projection      mgl32.Mat4
	PlanetMV        mgl32.Mat4
	CloudMV         mgl32.Mat4
	StarMV          mgl32.Mat4
	SunPos          mgl32.Vec3
	Programs        Programs
	LightmapPreview float32
}

func (f *Frame) uniforms(mv mgl32.Mat4, lightmap bool) Uniforms {
	return Uniforms{
		MV:       mv,
		P:        f.Projection,
		SunPos:   f.SunPos,
		Time:     f.Time,
		Viewport: mgl32.Vec2{float32(f.Width), float32(f.Height)},
		Lightmap: lightmap,
	}
}
