// Package sphere builds UV-sphere meshes from latitude/longitude rings.
package sphere

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MinSegments is the smallest vertical resolution the ring layout supports.
	MinSegments = 2
	// MaxSegments keeps every vertex index within uint32 (about 2*s*s vertices).
	MaxSegments = 16384
)

// Vertex is one interleaved GPU vertex: position, normal, texture coordinate.
// The layout is 8 tightly packed float32 values (32 bytes).
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	Tex    mgl32.Vec2
}

// Triangle holds three indices into the vertex list, counter-clockwise seen from outside.
type Triangle [3]uint32

// Mesh is a generated sphere ready for GPU upload.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
	Radius    float32
	Segments  int
}

// HorizontalSegments returns the number of columns per ring (excluding the seam duplicate).
func (m Mesh) HorizontalSegments() int {
	return m.Segments * 2
}

// Indices flattens the triangle list for an element buffer.
func (m Mesh) Indices() []uint32 {
	out := make([]uint32, 0, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// VertexCount returns the number of vertices Build produces for the given segment count.
func VertexCount(segments int) int {
	segments = clampSegments(segments)
	hsegs := segments * 2
	return 1 + (segments-1)*(hsegs+1) + 1
}

// TriangleCount returns the number of triangles Build produces for the given segment count.
func TriangleCount(segments int) int {
	segments = clampSegments(segments)
	hsegs := segments * 2
	return hsegs + (segments-2)*hsegs*2 + hsegs
}

// Build generates a closed UV sphere centered at the origin with its poles on the Z axis.
// Segments are clamped to [MinSegments, MaxSegments].
func Build(radius float32, segments int) Mesh {
	segments = clampSegments(segments)
	hsegs := segments * 2
	nverts := VertexCount(segments)

	vertices := make([]Vertex, nverts)

	vertices[0] = Vertex{
		Pos:    mgl32.Vec3{0, 0, radius},
		Normal: mgl32.Vec3{0, 0, 1},
		Tex:    mgl32.Vec2{0.5, 1},
	}
	vertices[nverts-1] = Vertex{
		Pos:    mgl32.Vec3{0, 0, -radius},
		Normal: mgl32.Vec3{0, 0, -1},
		Tex:    mgl32.Vec2{0.5, 0},
	}

	for j := 0; j < segments-1; j++ {
		theta := float64(j+1) / float64(segments) * math.Pi
		z := float32(math.Cos(theta))
		r := math.Sin(theta)
		v := 1 - float32(j+1)/float32(segments)

		row := 1 + j*(hsegs+1)
		for i := 0; i < hsegs; i++ {
			phi := float64(i) / float64(hsegs) * 2 * math.Pi
			normal := mgl32.Vec3{
				float32(r * math.Cos(phi)),
				float32(r * math.Sin(phi)),
				z,
			}
			vertices[row+i] = Vertex{
				Pos:    normal.Mul(radius),
				Normal: normal,
				Tex:    mgl32.Vec2{float32(i) / float32(hsegs), v},
			}
		}

		// Seam copy of column 0 so u reaches 1 without wrapping inside a quad.
		seam := vertices[row]
		seam.Tex[0] = 1
		vertices[row+hsegs] = seam
	}

	triangles := make([]Triangle, 0, TriangleCount(segments))
	triangles = append(triangles, topCap(hsegs)...)
	triangles = append(triangles, middleBands(segments, hsegs)...)
	triangles = append(triangles, bottomCap(hsegs, nverts)...)

	return Mesh{
		Vertices:  vertices,
		Triangles: triangles,
		Radius:    radius,
		Segments:  segments,
	}
}

// topCap fans from the north pole (index 0) to the first ring.
func topCap(hsegs int) []Triangle {
	tris := make([]Triangle, hsegs)
	for i := 0; i < hsegs; i++ {
		tris[i] = Triangle{0, uint32(1 + i), uint32(2 + i)}
	}
	return tris
}

// middleBands stitches consecutive rings with two triangles per quad.
// Column i+1 of the last quad in a row is the seam duplicate of column 0,
// on both the current ring and the next one.
func middleBands(segments, hsegs int) []Triangle {
	if segments < 3 {
		return nil
	}
	stride := hsegs + 1
	tris := make([]Triangle, 0, (segments-2)*hsegs*2)
	for j := 0; j < segments-2; j++ {
		row := 1 + j*stride
		for i := 0; i < hsegs; i++ {
			a := uint32(row + i)
			b := a + uint32(stride)
			c := a + 1
			d := b + 1
			tris = append(tris, Triangle{a, b, c}, Triangle{c, b, d})
		}
	}
	return tris
}

// bottomCap fans from the south pole (last index) to the last ring, walking it backwards.
func bottomCap(hsegs, nverts int) []Triangle {
	pole := uint32(nverts - 1)
	tris := make([]Triangle, hsegs)
	for i := 0; i < hsegs; i++ {
		tris[i] = Triangle{pole, uint32(nverts - 2 - i), uint32(nverts - 3 - i)}
	}
	return tris
}

func clampSegments(segments int) int {
	switch {
	case segments < MinSegments:
		return MinSegments
	case segments > MaxSegments:
		return MaxSegments
	}
	return segments
}
