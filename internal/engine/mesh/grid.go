package mesh

// Grid returns an (n+1)x(n+1) grid of unit-spaced vertices on the XY plane
// covering [0,n]x[0,n], two triangles per cell.
//
// Rows are walked alternately left to right and right to left so the index
// buffer can also be drawn as one line strip; the winding of every cell stays
// counter-clockwise whichever way the row is walked. n = 0 gives a single
// vertex and no triangles.
func Grid(n int) *Mesh {
	if n < 0 {
		panic("mesh: grid size must not be negative")
	}
	checkCapacity("grid", GridVertices(n))

	m := &Mesh{}
	stride := n + 1
	for row := 0; row <= n; row++ {
		for col := 0; col <= n; col++ {
			m.Vertices = append(m.Vertices, float32(col), float32(row), 0)
		}
	}

	cell := func(row, col int) {
		bl := uint16(row*stride + col)
		br := bl + 1
		tl := bl + uint16(stride)
		tr := tl + 1
		m.Indices = append(m.Indices, bl, br, tr, tr, tl, bl)
	}

	for row := 0; row < n; row++ {
		if row%2 == 0 {
			for col := 0; col < n; col++ {
				cell(row, col)
			}
		} else {
			for col := n - 1; col >= 0; col-- {
				cell(row, col)
			}
		}
	}

	// Drawn untextured.
	m.UVs = make([]float32, m.VertexCount()*2)
	m.Recolor(1, 0, 1)
	return m
}

// Plane returns a 1x1 quad on the XY plane facing +Z, with UVs equal to its
// XY coordinates.
func Plane() *Mesh {
	m := &Mesh{
		Indices: []uint16{
			0, 1, 2,
			2, 3, 0,
		},
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
		},
	}
	for i := 0; i < len(m.Vertices); i += 3 {
		m.UVs = append(m.UVs, m.Vertices[i], m.Vertices[i+1])
	}
	m.Recolor(1, 1, 1)
	ComputeNormals(m)
	return m
}
