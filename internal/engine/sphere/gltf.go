package sphere

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Document converts the mesh into a single-node glTF 2.0 document.
func Document(m Mesh) *gltf.Document {
	doc := gltf.NewDocument()

	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	uvs := make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Pos
		normals[i] = v.Normal
		// glTF puts the texture origin at the top-left.
		uvs[i] = [2]float32{v.Tex[0], 1 - v.Tex[1]}
	}

	positionAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	uvAccessor := modeler.WriteTextureCoord(doc, uvs)
	indicesAccessor := modeler.WriteIndices(doc, m.Indices())

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: fmt.Sprintf("sphere_r%g_s%d", m.Radius, m.Segments),
		Primitives: []*gltf.Primitive{
			{
				Indices: gltf.Index(indicesAccessor),
				Attributes: map[string]uint32{
					"POSITION":   positionAccessor,
					"NORMAL":     normalAccessor,
					"TEXCOORD_0": uvAccessor,
				},
			},
		},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: "sphere",
		Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))

	return doc
}

// ExportGLTF writes the mesh as glTF JSON, or as GLB when binary is set.
func ExportGLTF(w io.Writer, m Mesh, binary bool) error {
	doc := Document(m)
	if !binary {
		for _, buf := range doc.Buffers {
			buf.EmbeddedResource()
		}
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = binary
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding gltf: %w", err)
	}
	return nil
}
