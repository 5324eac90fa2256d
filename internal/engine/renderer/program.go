package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/engine/glprog"
	"github.com/Faultbox/planetview/internal/logger"
)

// attributes are bound before linking so every program agrees with the
// interleaved layout set up by UploadSphere and UploadStars.
var attributes = []string{"pos", "normal", "tex"}

// Compile builds and links a program from vertex and fragment source.
func (r *Renderer) Compile(vertexSrc, fragmentSrc string) (uint32, error) {
	program, err := glprog.Link(vertexSrc, fragmentSrc, attributes...)
	if err != nil {
		return 0, err
	}
	logger.Debug("program linked", zap.Uint32("program", program))
	return program, nil
}

// Release deletes a program created by Compile.
func (r *Renderer) Release(id uint32) {
	if id == 0 {
		return
	}
	delete(r.uniforms, id)
	gl.DeleteProgram(id)
	logger.Debug("program released", zap.Uint32("program", id))
}
