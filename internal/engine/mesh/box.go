package mesh

import "github.com/Faultbox/castle/pkg/math"

// Face order used by BoxDesc.Tiles and by the vertex layout of Box.
const (
	FaceFront = iota
	FaceRight
	FaceBack
	FaceLeft
	FaceTop
	FaceBottom
	faceCount
)

// BoxDesc describes an axis-aligned hexahedron such as a wall, hedge or gate.
type BoxDesc struct {
	Min math.Vec3
	Max math.Vec3

	// Tiles holds the texture repeat count (u, v) of each face, in Face* order.
	// A zero entry means (1, 1).
	Tiles [faceCount]math.Vec2
}

// Box builds a box from its description: 6 faces of 4 vertices each
// (24 vertices, 36 indices), counter-clockwise seen from outside.
func Box(d BoxDesc) *Mesh {
	lo, hi := d.Min, d.Max

	corners := [faceCount][4]math.Vec3{
		FaceFront: {
			{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z},
			{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
		},
		FaceRight: {
			{X: hi.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
			{X: hi.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: hi.Z},
		},
		FaceBack: {
			{X: hi.X, Y: lo.Y, Z: lo.Z}, {X: lo.X, Y: lo.Y, Z: lo.Z},
			{X: lo.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z},
		},
		FaceLeft: {
			{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: lo.X, Y: lo.Y, Z: hi.Z},
			{X: lo.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z},
		},
		FaceTop: {
			{X: lo.X, Y: hi.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
			{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z},
		},
		FaceBottom: {
			{X: hi.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z},
			{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: lo.X, Y: lo.Y, Z: lo.Z},
		},
	}

	m := &Mesh{}
	for f := 0; f < faceCount; f++ {
		base := uint16(f * 4)
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base+2, base+3, base,
		)

		tile := d.Tiles[f]
		if tile == (math.Vec2{}) {
			tile = math.Vec2{X: 1, Y: 1}
		}
		for _, c := range corners[f] {
			m.Vertices = append(m.Vertices, c.X, c.Y, c.Z)
		}
		m.UVs = append(m.UVs,
			0, 0,
			tile.X, 0,
			tile.X, tile.Y,
			0, tile.Y,
		)
	}

	m.Recolor(1, 1, 1)
	ComputeNormals(m)
	return m
}
