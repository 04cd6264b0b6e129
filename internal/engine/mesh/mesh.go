// Package mesh builds index/vertex/UV/colour/normal buffers for the scene's solids.
//
// Generators are pure: they take shape parameters and return a self-consistent
// Mesh. Bad parameters are programming errors and panic.
package mesh

import (
	"fmt"
	gomath "math"
)

// Mesh holds the attribute sequences of one renderable solid.
// Vertices, Colors and Normals have 3 floats per vertex, UVs have 2.
// Colors and Normals may be empty.
type Mesh struct {
	Vertices []float32
	Indices  []uint16
	UVs      []float32
	Colors   []float32
	Normals  []float32
}

// MaxVertices is the most vertices a mesh can address with 16-bit indices.
const MaxVertices = gomath.MaxUint16 + 1

// GridVertices returns the vertex count of Grid(n).
func GridVertices(n int) int {
	if n >= MaxVertices {
		// (n+1)^2 could overflow int; any such grid is already too large.
		return n + 1
	}
	return (n + 1) * (n + 1)
}

// PrismVertices returns the vertex count of Prism(sides).
func PrismVertices(sides int) int { return 2*sides + 2 }

// ConeVertices returns the vertex count of Cone(sides).
func ConeVertices(sides int) int { return sides + 2 }

// BoxVertices returns the vertex count of boxes merged Box meshes.
func BoxVertices(boxes int) int { return boxes * 24 }

func checkCapacity(what string, n int) {
	if n > MaxVertices {
		panic(fmt.Sprintf("mesh: %s vertex count %d overflows 16-bit indices", what, n))
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c uint16) {
	return m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
}

// Position returns vertex i.
func (m *Mesh) Position(i int) [3]float32 {
	return [3]float32{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
}

// Recolor replaces the colour sequence with one flat colour for every vertex.
func (m *Mesh) Recolor(r, g, b float32) {
	n := m.VertexCount()
	colors := make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		colors = append(colors, r, g, b)
	}
	m.Colors = colors
}

// Validate checks the buffer invariants: whole vertices, whole triangles,
// indices in range and one UV/colour/normal entry per vertex.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("vertex buffer length %d is not a multiple of 3", len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index buffer length %d is not a multiple of 3", len(m.Indices))
	}

	n := m.VertexCount()
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at position %d out of range (vertex count %d)", idx, i, n)
		}
	}

	if len(m.UVs) != n*2 {
		return fmt.Errorf("uv buffer has %d entries, want %d", len(m.UVs)/2, n)
	}
	if len(m.Colors) != 0 && len(m.Colors) != n*3 {
		return fmt.Errorf("colour buffer has %d entries, want %d", len(m.Colors)/3, n)
	}
	if len(m.Normals) != 0 && len(m.Normals) != n*3 {
		return fmt.Errorf("normal buffer has %d entries, want %d", len(m.Normals)/3, n)
	}
	return nil
}

// Merge concatenates meshes into one, re-basing indices.
// Missing colours are filled with white; normals are kept only when every
// input carries them.
func Merge(meshes ...*Mesh) *Mesh {
	out := &Mesh{}
	keepNormals := len(meshes) > 0

	total := 0
	for _, m := range meshes {
		total += m.VertexCount()
		if len(m.Normals) == 0 {
			keepNormals = false
		}
	}
	checkCapacity("merged", total)

	for _, m := range meshes {
		base := uint16(out.VertexCount())
		for _, idx := range m.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
		out.Vertices = append(out.Vertices, m.Vertices...)
		out.UVs = append(out.UVs, m.UVs...)

		if len(m.Colors) > 0 {
			out.Colors = append(out.Colors, m.Colors...)
		} else {
			for i := 0; i < m.VertexCount(); i++ {
				out.Colors = append(out.Colors, 1, 1, 1)
			}
		}

		if keepNormals {
			out.Normals = append(out.Normals, m.Normals...)
		}
	}
	return out
}
