package mesh

import "fmt"

// Primitive is how a mesh's index buffer is assembled when drawn.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	LineStrip
)

var primitiveNames = map[Primitive]string{
	Triangles: "triangles",
	Lines:     "lines",
	LineStrip: "line_strip",
}

func (p Primitive) String() string {
	if s, ok := primitiveNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// ParsePrimitive maps a layout name to a Primitive. The empty string is triangles.
func ParsePrimitive(s string) (Primitive, error) {
	if s == "" {
		return Triangles, nil
	}
	for p, name := range primitiveNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown primitive %q", s)
}
