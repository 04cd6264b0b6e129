package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/castle/internal/engine/mesh"
)

// Attribute locations shared with the scene vertex shader.
const (
	attribPosition = 0
	attribColor    = 1
	attribUV       = 2
	attribNormal   = 3
)

// Mesh is a mesh uploaded to the GPU.
type Mesh struct {
	vao        uint32
	ibo        uint32
	vbos       [4]uint32
	indexCount int32
	mode       uint32
}

// Upload validates m and copies it into a new vertex array.
func Upload(m *mesh.Mesh, prim mesh.Primitive) (*Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("upload mesh: %w", err)
	}

	g := &Mesh{
		indexCount: int32(len(m.Indices)),
		mode:       glMode(prim),
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	g.vbos[attribPosition] = attribute(attribPosition, 3, m.Vertices)

	colors := m.Colors
	if colors == nil {
		colors = make([]float32, len(m.Vertices))
		for i := range colors {
			colors[i] = 1
		}
	}
	g.vbos[attribColor] = attribute(attribColor, 3, colors)

	uvs := m.UVs
	if uvs == nil {
		uvs = make([]float32, m.VertexCount()*2)
	}
	g.vbos[attribUV] = attribute(attribUV, 2, uvs)

	normals := m.Normals
	if normals == nil {
		normals = make([]float32, len(m.Vertices))
	}
	g.vbos[attribNormal] = attribute(attribNormal, 3, normals)

	gl.GenBuffers(1, &g.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ibo)
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*2, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return g, nil
}

func attribute(loc uint32, size int32, data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
	return vbo
}

func glMode(p mesh.Primitive) uint32 {
	switch p {
	case mesh.Lines:
		return gl.LINES
	case mesh.LineStrip:
		return gl.LINE_STRIP
	default:
		return gl.TRIANGLES
	}
}

// Draw issues the indexed draw call.
func (g *Mesh) Draw() {
	if g.indexCount == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(g.mode, g.indexCount, gl.UNSIGNED_SHORT, 0)
}

// Delete releases the GPU buffers.
func (g *Mesh) Delete() {
	if g.vao == 0 {
		return
	}
	gl.DeleteBuffers(int32(len(g.vbos)), &g.vbos[0])
	gl.DeleteBuffers(1, &g.ibo)
	gl.DeleteVertexArrays(1, &g.vao)
	g.vao = 0
}
