package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/planetview/internal/engine/scene"
	"github.com/Faultbox/planetview/internal/engine/shader"
)

var (
	_ scene.Device    = (*Renderer)(nil)
	_ shader.Compiler = (*Renderer)(nil)
)

// lightmapUnit is the texture unit the lightmap is bound to while sampled.
const lightmapUnit = 0

// BeginPass binds a target at the given size and clears it.
// The lightmap follows the framebuffer size every frame.
func (r *Renderer) BeginPass(target scene.Target, width, height int32) {
	switch target {
	case scene.TargetLightmap:
		r.lightmap.Resize(width, height)
		gl.DepthMask(true)
		r.lightmap.Begin(0, 0, 0, 0)
	default:
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, width, height)
		gl.DepthMask(true)
		c := r.config.ClearColor
		gl.ClearColor(c[0], c[1], c[2], c[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}
}

// Draw applies the call's state, uniforms and program, then draws its geometry.
func (r *Renderer) Draw(call scene.DrawCall) {
	applyParams(call.Params)

	gl.UseProgram(call.Program)
	r.setUniforms(call.Program, call.Uniforms)

	switch call.Geometry {
	case scene.GeometryStars:
		if r.stars.count == 0 {
			return
		}
		gl.PointSize(r.config.PointSize)
		gl.BindVertexArray(r.stars.vao)
		gl.DrawArrays(gl.POINTS, 0, r.stars.count)
	default:
		gl.BindVertexArray(r.sphere.vao)
		gl.DrawElements(gl.TRIANGLES, r.sphere.count, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// BlitLightmap copies the lightmap into the top-right corner of the screen.
func (r *Renderer) BlitLightmap(width, height int32, fraction float32) {
	x0, y0, x1, y1, ok := scene.PreviewRect(width, height, fraction)
	if !ok {
		return
	}
	r.lightmap.BlitToScreen(x0, y0, x1, y1)
}

func (r *Renderer) setUniforms(program uint32, u scene.Uniforms) {
	if loc := r.location(program, "MV"); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &u.MV[0])
	}
	if loc := r.location(program, "P"); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &u.P[0])
	}
	if loc := r.location(program, "sun_pos"); loc >= 0 {
		gl.Uniform3fv(loc, 1, &u.SunPos[0])
	}
	if loc := r.location(program, "time"); loc >= 0 {
		gl.Uniform1f(loc, u.Time)
	}
	if loc := r.location(program, "viewport"); loc >= 0 {
		gl.Uniform2fv(loc, 1, &u.Viewport[0])
	}
	if u.Lightmap {
		gl.ActiveTexture(gl.TEXTURE0 + lightmapUnit)
		gl.BindTexture(gl.TEXTURE_2D, r.lightmap.Texture())
		if loc := r.location(program, "lightmap"); loc >= 0 {
			gl.Uniform1i(loc, lightmapUnit)
		}
	}
}

// location caches uniform lookups. Uniforms the compiler optimized out return -1.
func (r *Renderer) location(program uint32, name string) int32 {
	locs, ok := r.uniforms[program]
	if !ok {
		locs = make(map[string]int32)
		r.uniforms[program] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		locs[name] = loc
	}
	return loc
}

func applyParams(p scene.DrawParams) {
	switch p.Cull {
	case scene.CullNone:
		gl.Disable(gl.CULL_FACE)
	case scene.CullClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.BACK)
	case scene.CullCounterClockwise:
		gl.Enable(gl.CULL_FACE)
		gl.FrontFace(gl.CCW)
		gl.CullFace(gl.FRONT)
	}

	switch p.Blend {
	case scene.BlendAlpha:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	default:
		gl.Disable(gl.BLEND)
	}

	switch p.Depth {
	case scene.DepthLess:
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	default:
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(p.DepthWrite)
}

// ReadPixels reads the visible framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
