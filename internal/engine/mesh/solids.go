package mesh

import (
	"fmt"
	gomath "math"
)

// Solids occupy the unit cell [0,1] on X and Z, base at y=0, top at y=1.
const (
	center = 0.5
	radius = 0.5

	// boxFaces is how many faces the side UVs wrap around, whatever the side count.
	boxFaces = 4
)

// ring returns the XZ coordinates and the wrapped u coordinate of ring vertex i.
// Angles grow counter-clockwise seen from +Y.
func ring(i, sides int) (x, z, u float32) {
	theta := 2 * gomath.Pi * float64(i) / float64(sides)
	s, c := gomath.Sincos(theta)
	x = float32(center + radius*c)
	z = float32(center - radius*s)
	u = float32(i) * boxFaces / float32(sides)
	return x, z, u
}

func checkSides(sides int) {
	if sides < 3 {
		panic(fmt.Sprintf("mesh: need at least 3 sides, got %d", sides))
	}
}

// Prism approximates a unit-diameter, unit-height cylinder with the given
// number of side faces. Vertex layout: top centre, top ring, bottom centre,
// bottom ring (2*sides+2 vertices). Normals are averaged per vertex.
func Prism(sides int) *Mesh {
	checkSides(sides)
	checkCapacity("prism", PrismVertices(sides))

	m := &Mesh{}
	add := func(x, y, z, u, v float32) {
		m.Vertices = append(m.Vertices, x, y, z)
		m.UVs = append(m.UVs, u, v)
	}

	top := uint16(0)
	add(center, 1, center, 0.5, 0.5)
	for i := 0; i < sides; i++ {
		x, z, u := ring(i, sides)
		add(x, 1, z, u, 1)
	}

	bottom := uint16(sides + 1)
	add(center, 0, center, 0.5, 0.5)
	for i := 0; i < sides; i++ {
		x, z, u := ring(i, sides)
		add(x, 0, z, u, 0)
	}

	for i := 0; i < sides; i++ {
		j := (i + 1) % sides
		ti, tj := top+1+uint16(i), top+1+uint16(j)
		bi, bj := bottom+1+uint16(i), bottom+1+uint16(j)

		// Caps fan from their centre.
		m.Indices = append(m.Indices, top, ti, tj)
		m.Indices = append(m.Indices, bottom, bj, bi)

		m.Indices = append(m.Indices,
			bi, bj, tj,
			tj, ti, bi,
		)
	}

	m.Recolor(1, 1, 1)
	ComputeNormals(m)
	return m
}

// Cone is Prism's bottom half with the top ring collapsed into one apex:
// bottom centre, bottom ring, apex (sides+2 vertices, 2*sides triangles).
func Cone(sides int) *Mesh {
	checkSides(sides)
	checkCapacity("cone", ConeVertices(sides))

	m := &Mesh{}
	add := func(x, y, z, u, v float32) {
		m.Vertices = append(m.Vertices, x, y, z)
		m.UVs = append(m.UVs, u, v)
	}

	bottom := uint16(0)
	add(center, 0, center, 0.5, 0.5)
	for i := 0; i < sides; i++ {
		x, z, u := ring(i, sides)
		add(x, 0, z, u, 0)
	}
	apex := uint16(sides + 1)
	add(center, 1, center, boxFaces/2, 1)

	for i := 0; i < sides; i++ {
		j := (i + 1) % sides
		bi, bj := bottom+1+uint16(i), bottom+1+uint16(j)

		m.Indices = append(m.Indices, bottom, bj, bi)
		m.Indices = append(m.Indices, bi, bj, apex)
	}

	m.Recolor(1, 1, 1)
	ComputeNormals(m)
	return m
}
