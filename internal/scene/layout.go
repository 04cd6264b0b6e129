// Package scene loads the declarative castle layout and renders it.
package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/castle/internal/engine/lighting"
	"github.com/Faultbox/castle/internal/engine/mesh"
	"github.com/Faultbox/castle/pkg/math"
)

//go:embed castle.yaml
var castleLayout []byte

// Object kinds understood by Build.
const (
	KindGrid  = "grid"
	KindPlane = "plane"
	KindBoxes = "boxes"
	KindPrism = "prism"
	KindCone  = "cone"
)

// DefaultTexture is bound for objects that name no texture.
const DefaultTexture = "blank"

// Vec3 is a YAML triple.
type Vec3 [3]float32

func (v Vec3) vec() math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} }

// Layout is a parsed scene file.
type Layout struct {
	Lights  *LightsSpec  `yaml:"lights,omitempty"`
	Objects []ObjectSpec `yaml:"objects"`
}

// LightsSpec overrides the default light rig.
type LightsSpec struct {
	Ambient AmbientSpec `yaml:"ambient"`
	Points  []PointSpec `yaml:"points"`
}

// AmbientSpec describes the ambient light.
type AmbientSpec struct {
	Color    Vec3    `yaml:"color"`
	Strength float32 `yaml:"strength"`
}

// PointSpec describes one point light.
type PointSpec struct {
	Position Vec3    `yaml:"position"`
	Range    float32 `yaml:"range"`
	Color    Vec3    `yaml:"color"`
	Strength float32 `yaml:"strength"`
}

// ObjectSpec is one entry of the objects list.
type ObjectSpec struct {
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind"`
	Size      int           `yaml:"size,omitempty"`  // grid cells per side
	Sides     int           `yaml:"sides,omitempty"` // prism and cone
	Boxes     []BoxSpec     `yaml:"boxes,omitempty"`
	Texture   string        `yaml:"texture,omitempty"`
	Color     *Vec3         `yaml:"color,omitempty"`
	Primitive string        `yaml:"primitive,omitempty"`
	Lit       *bool         `yaml:"lit,omitempty"`
	Transform TransformSpec `yaml:"transform"`
	Instances []Vec3        `yaml:"instances,omitempty"`
}

// TransformSpec is the YAML form of transform.Transform. Scale defaults to
// (1,1,1) and Axis to +X.
type TransformSpec struct {
	Scale     *Vec3   `yaml:"scale,omitempty"`
	Axis      *Vec3   `yaml:"axis,omitempty"`
	Angle     float32 `yaml:"angle,omitempty"`
	Translate Vec3    `yaml:"translate,omitempty"`
}

// BoxSpec is the YAML form of mesh.BoxDesc. Tiles maps face names to UV
// repeat counts; faces not listed tile once.
type BoxSpec struct {
	Min   Vec3                  `yaml:"min"`
	Max   Vec3                  `yaml:"max"`
	Tiles map[string][2]float32 `yaml:"tiles,omitempty"`
}

var faceNames = map[string]int{
	"front":  mesh.FaceFront,
	"right":  mesh.FaceRight,
	"back":   mesh.FaceBack,
	"left":   mesh.FaceLeft,
	"top":    mesh.FaceTop,
	"bottom": mesh.FaceBottom,
}

// Parse decodes a layout. Unknown fields are rejected.
func Parse(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var l Layout
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if len(l.Objects) == 0 {
		return nil, errors.New("parse layout: no objects")
	}
	return &l, nil
}

// Load reads and parses a layout file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return Parse(data)
}

// Castle returns the embedded castle layout.
func Castle() *Layout {
	l, err := Parse(castleLayout)
	if err != nil {
		panic(fmt.Sprintf("embedded layout: %v", err))
	}
	return l
}

// Rig returns the layout's lights, or the castle rig when none are given.
func (l *Layout) Rig() (lighting.Rig, error) {
	if l.Lights == nil {
		return lighting.CastleRig(), nil
	}
	if n := len(l.Lights.Points); n != lighting.PointLightCount {
		return lighting.Rig{}, fmt.Errorf("lights: %d point lights, want %d", n, lighting.PointLightCount)
	}
	rig := lighting.Rig{
		Ambient: lighting.AmbientLight{
			Color:    l.Lights.Ambient.Color.vec(),
			Strength: l.Lights.Ambient.Strength,
		},
	}
	for i, p := range l.Lights.Points {
		if p.Range <= 0 {
			return lighting.Rig{}, fmt.Errorf("lights: point %d: range must be positive", i)
		}
		rig.Points[i] = lighting.NewPointLight(p.Position.vec(), p.Range, p.Color.vec(), p.Strength)
	}
	return rig, nil
}

// Textures returns the distinct texture names the layout uses, in first-use order.
func (l *Layout) Textures() []string {
	seen := make(map[string]bool)
	var names []string
	for _, o := range l.Objects {
		t := o.Texture
		if t == "" {
			t = DefaultTexture
		}
		if !seen[t] {
			seen[t] = true
			names = append(names, t)
		}
	}
	return names
}
