package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/engine/sphere"
	"github.com/Faultbox/planetview/internal/logger"
)

// buffers is one uploaded vertex array.
type buffers struct {
	vao, vbo, ebo uint32
	count         int32
}

func (b *buffers) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	for _, id := range []*uint32{&b.vbo, &b.ebo} {
		if *id != 0 {
			gl.DeleteBuffers(1, id)
		}
	}
	*b = buffers{}
}

const (
	floatSize    = 4
	vertexStride = int32(unsafe.Sizeof(sphere.Vertex{}))
)

// UploadSphere creates the interleaved vertex buffer and the index buffer
// shared by every planet and cloud draw.
func (r *Renderer) UploadSphere(mesh sphere.Mesh) error {
	if len(mesh.Vertices) == 0 || len(mesh.Triangles) == 0 {
		return errors.New("sphere mesh is empty")
	}
	indices := mesh.Indices()

	b := &r.sphere
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(vertexStride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*floatSize)
	gl.EnableVertexAttribArray(1)

	// Texture coordinate attribute (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*floatSize)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	b.count = int32(len(indices))
	logger.Debug("sphere uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Triangles)),
		zap.Uint32("vao", b.vao),
	)
	return nil
}

// UploadStars creates the unindexed point buffer for the starfield.
// An empty starfield uploads nothing and draws nothing.
func (r *Renderer) UploadStars(stars []mgl32.Vec3) error {
	if len(stars) == 0 {
		return nil
	}

	b := &r.stars
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(stars)*3*floatSize, unsafe.Pointer(&stars[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*floatSize, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	b.count = int32(len(stars))
	logger.Debug("stars uploaded", zap.Int("count", len(stars)), zap.Uint32("vao", b.vao))
	return nil
}
