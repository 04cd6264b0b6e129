package mesh

import (
	"fmt"

	"github.com/Faultbox/castle/pkg/math"
)

// ComputeNormals replaces m.Normals with smoothed per-vertex normals.
//
// Each triangle (v0, v1, v2) contributes normalize((v1-v0) x (v2-v0)) to its
// three vertices, which is the outward normal for counter-clockwise fronts.
// The per-vertex sums are normalized at the end. A vertex whose sum is zero
// (only degenerate or cancelling triangles) keeps a zero normal.
func ComputeNormals(m *Mesh) {
	if len(m.Indices)%3 != 0 {
		panic(fmt.Sprintf("mesh: index buffer length %d is not a multiple of 3", len(m.Indices)))
	}

	sums := make([]math.Vec3, m.VertexCount())
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		v0, v1, v2 := vec(m.Position(int(a))), vec(m.Position(int(b))), vec(m.Position(int(c)))

		n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}

	m.Normals = make([]float32, 0, len(sums)*3)
	for _, s := range sums {
		n := s.Normalize()
		m.Normals = append(m.Normals, n.X, n.Y, n.Z)
	}
}

func vec(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
