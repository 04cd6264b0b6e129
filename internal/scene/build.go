package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/castle/internal/engine/mesh"
	"github.com/Faultbox/castle/internal/engine/transform"
	"github.com/Faultbox/castle/pkg/math"
)

// Object is one drawable placed in the world. Instances of the same layout
// entry share a Mesh.
type Object struct {
	Name      string
	Mesh      *mesh.Mesh
	Texture   string
	Primitive mesh.Primitive
	Transform transform.Transform
	Lit       bool
}

// Build generates every object's mesh and validates it.
func (l *Layout) Build() ([]Object, error) {
	var objects []Object
	names := make(map[string]bool)

	for i, spec := range l.Objects {
		if spec.Name == "" {
			return nil, fmt.Errorf("object %d: missing name", i)
		}
		if names[spec.Name] {
			return nil, fmt.Errorf("object %q: duplicate name", spec.Name)
		}
		names[spec.Name] = true

		built, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", spec.Name, err)
		}
		objects = append(objects, built...)
	}
	return objects, nil
}

func (s ObjectSpec) build() ([]Object, error) {
	m, err := s.mesh()
	if err != nil {
		return nil, err
	}
	if s.Color != nil {
		m.Recolor(s.Color[0], s.Color[1], s.Color[2])
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	prim, err := mesh.ParsePrimitive(s.Primitive)
	if err != nil {
		return nil, err
	}
	xf, err := s.Transform.transform()
	if err != nil {
		return nil, err
	}

	obj := Object{
		Name:      s.Name,
		Mesh:      m,
		Texture:   s.Texture,
		Primitive: prim,
		Transform: xf,
		Lit:       s.Lit == nil || *s.Lit,
	}
	if obj.Texture == "" {
		obj.Texture = DefaultTexture
	}

	if len(s.Instances) == 0 {
		return []Object{obj}, nil
	}
	objects := make([]Object, len(s.Instances))
	for i, at := range s.Instances {
		o := obj
		o.Name = fmt.Sprintf("%s[%d]", s.Name, i)
		o.Transform.Translation = obj.Transform.Translation.Add(at.vec())
		objects[i] = o
	}
	return objects, nil
}

func (s ObjectSpec) mesh() (*mesh.Mesh, error) {
	switch s.Kind {
	case KindGrid:
		if s.Size < 0 {
			return nil, fmt.Errorf("grid size %d is negative", s.Size)
		}
		if err := fits(mesh.GridVertices(s.Size)); err != nil {
			return nil, fmt.Errorf("grid size %d: %w", s.Size, err)
		}
		return mesh.Grid(s.Size), nil

	case KindPlane:
		return mesh.Plane(), nil

	case KindPrism, KindCone:
		if s.Sides < 3 {
			return nil, fmt.Errorf("%s needs at least 3 sides, got %d", s.Kind, s.Sides)
		}
		if s.Kind == KindPrism {
			if err := fits(mesh.PrismVertices(s.Sides)); err != nil {
				return nil, fmt.Errorf("prism with %d sides: %w", s.Sides, err)
			}
			return mesh.Prism(s.Sides), nil
		}
		if err := fits(mesh.ConeVertices(s.Sides)); err != nil {
			return nil, fmt.Errorf("cone with %d sides: %w", s.Sides, err)
		}
		return mesh.Cone(s.Sides), nil

	case KindBoxes:
		if len(s.Boxes) == 0 {
			return nil, errors.New("boxes: empty list")
		}
		if err := fits(mesh.BoxVertices(len(s.Boxes))); err != nil {
			return nil, fmt.Errorf("%d boxes: %w", len(s.Boxes), err)
		}
		parts := make([]*mesh.Mesh, len(s.Boxes))
		for i, b := range s.Boxes {
			desc, err := b.desc()
			if err != nil {
				return nil, fmt.Errorf("box %d: %w", i, err)
			}
			parts[i] = mesh.Box(desc)
		}
		return mesh.Merge(parts...), nil

	case "":
		return nil, errors.New("missing kind")
	default:
		return nil, fmt.Errorf("unknown kind %q", s.Kind)
	}
}

// fits reports whether n vertices can be addressed by 16-bit indices.
func fits(n int) error {
	if n > mesh.MaxVertices {
		return fmt.Errorf("%d vertices exceed the %d a mesh can index", n, mesh.MaxVertices)
	}
	return nil
}

func (b BoxSpec) desc() (mesh.BoxDesc, error) {
	d := mesh.BoxDesc{Min: b.Min.vec(), Max: b.Max.vec()}
	for axis := 0; axis < 3; axis++ {
		if b.Min[axis] >= b.Max[axis] {
			return d, fmt.Errorf("min %v not below max %v", b.Min, b.Max)
		}
	}
	for name, uv := range b.Tiles {
		f, ok := faceNames[name]
		if !ok {
			return d, fmt.Errorf("unknown face %q", name)
		}
		d.Tiles[f] = math.Vec2{X: uv[0], Y: uv[1]}
	}
	return d, nil
}

func (t TransformSpec) transform() (transform.Transform, error) {
	xf := transform.Identity()
	if t.Scale != nil {
		xf.Scale = t.Scale.vec()
	}
	if t.Axis != nil {
		xf.Axis = t.Axis.vec()
	}
	if t.Angle != 0 && xf.Axis.Length() == 0 {
		return xf, errors.New("transform: rotation around a zero axis")
	}
	xf.Angle = t.Angle
	xf.Translation = t.Translate.vec()
	return xf, nil
}
