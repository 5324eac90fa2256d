// Package renderer implements the scene device and shader compiler on OpenGL 4.1 core.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/engine/framebuffer"
	"github.com/Faultbox/planetview/internal/logger"
)

// Config sizes the lightmap and fixes the clear color and star point size.
type Config struct {
	Width      int32
	Height     int32
	PointSize  float32
	ClearColor [4]float32
}

// Renderer executes scene draw calls against the current GL context. It owns
// the uploaded sphere and star buffers and the off-screen lightmap.
type Renderer struct {
	config Config

	lightmap *framebuffer.Target
	sphere   buffers
	stars    buffers

	// Uniform locations per program, dropped when the program is released
	uniforms map[uint32]map[string]int32
}

// New loads the GL entry points and allocates the lightmap. The window's
// context must already be current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("load gl: %w", err)
	}
	logger.Info("gl ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("device", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	lightmap, err := framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("create lightmap: %w", err)
	}
	return &Renderer{
		config:   cfg,
		lightmap: lightmap,
		uniforms: make(map[uint32]map[string]int32),
	}, nil
}

// Close frees the mesh buffers and the lightmap.
func (r *Renderer) Close() {
	r.sphere.delete()
	r.stars.delete()
	if r.lightmap != nil {
		r.lightmap.Destroy()
		r.lightmap = nil
	}
	logger.Debug("renderer closed")
}
