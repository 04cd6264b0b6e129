package scene

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/castle/internal/engine/lighting"
	"github.com/Faultbox/castle/internal/engine/mesh"
	"github.com/Faultbox/castle/pkg/math"
)

func TestCastleBuilds(t *testing.T) {
	objects, err := Castle().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(objects) != 14 {
		t.Fatalf("got %d objects, want 14", len(objects))
	}

	byName := make(map[string]Object)
	for _, o := range objects {
		byName[o.Name] = o
	}

	grid := byName["grid"]
	if grid.Primitive != mesh.LineStrip || grid.Lit {
		t.Errorf("grid primitive %v lit %v, want unlit line_strip", grid.Primitive, grid.Lit)
	}
	if grid.Mesh.VertexCount() != 121 {
		t.Errorf("grid has %d vertices, want 121", grid.Mesh.VertexCount())
	}

	walls := byName["walls"]
	if walls.Mesh.VertexCount() != 6*24 {
		t.Errorf("walls have %d vertices, want %d", walls.Mesh.VertexCount(), 6*24)
	}
	if walls.Mesh.Colors[0] != 1 || walls.Mesh.Colors[1] != 0.9 || walls.Mesh.Colors[2] != 0.65 {
		t.Errorf("wall colour %v", walls.Mesh.Colors[:3])
	}
	if walls.Texture != "brick" || !walls.Lit {
		t.Errorf("walls texture %q lit %v", walls.Texture, walls.Lit)
	}

	tower0, tower3 := byName["towers[0]"], byName["towers[3]"]
	if tower0.Mesh != tower3.Mesh {
		t.Error("tower instances do not share a mesh")
	}
	if want := (math.Vec3{X: -0.8, Y: 0, Z: -10.9}); tower3.Transform.Translation != want {
		t.Errorf("towers[3] at %v, want %v", tower3.Transform.Translation, want)
	}
	if tower0.Mesh.VertexCount() != 26 {
		t.Errorf("tower has %d vertices, want 26", tower0.Mesh.VertexCount())
	}

	roof := byName["roofs[1]"]
	if roof.Mesh.VertexCount() != 14 || roof.Mesh.IndexCount() != 72 {
		t.Errorf("roof has %d vertices and %d indices, want 14 and 72", roof.Mesh.VertexCount(), roof.Mesh.IndexCount())
	}
	if want := (math.Vec3{X: 1.5, Y: 1, Z: 1.5}); roof.Transform.Scale != want {
		t.Errorf("roof scale %v, want %v", roof.Transform.Scale, want)
	}
}

func TestCastleWallsCoverGround(t *testing.T) {
	objects, err := Castle().Build()
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range objects {
		if o.Name != "walls" {
			continue
		}
		model := o.Transform.Matrix()
		for i := 0; i < o.Mesh.VertexCount(); i++ {
			p := o.Mesh.Position(i)
			w := model.TransformPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
			if w.X < -1e-4 || w.X > 10+1e-4 || w.Z < -10.1-1e-4 || w.Z > 0.5+1e-4 || w.Y < 0 || w.Y > 2+1e-4 {
				t.Fatalf("wall vertex %d at %v lies outside the courtyard", i, w)
			}
		}
	}
}

func TestCastleTextures(t *testing.T) {
	got := Castle().Textures()
	want := []string{"blank", "grass", "brick", "gate", "hedge", "castle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Textures() = %v, want %v", got, want)
	}
}

func TestCastleRig(t *testing.T) {
	rig, err := Castle().Rig()
	if err != nil {
		t.Fatal(err)
	}
	if rig != lighting.CastleRig() {
		t.Errorf("rig %+v, want %+v", rig, lighting.CastleRig())
	}
}

func TestDefaults(t *testing.T) {
	l, err := Parse([]byte(`
objects:
  - name: tile
    kind: plane
`))
	if err != nil {
		t.Fatal(err)
	}
	objects, err := l.Build()
	if err != nil {
		t.Fatal(err)
	}
	o := objects[0]
	if o.Texture != DefaultTexture || !o.Lit || o.Primitive != mesh.Triangles {
		t.Errorf("defaults: texture %q lit %v primitive %v", o.Texture, o.Lit, o.Primitive)
	}
	if want := (math.Vec3{X: 1, Y: 1, Z: 1}); o.Transform.Scale != want {
		t.Errorf("default scale %v, want %v", o.Transform.Scale, want)
	}

	rig, err := l.Rig()
	if err != nil || rig != lighting.CastleRig() {
		t.Errorf("layout without lights: rig %+v err %v", rig, err)
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no objects", "objects: []", "no objects"},
		{"unknown field", "objects: [{name: a, kind: plane, colour: [1, 1, 1]}]", "colour"},
		{"missing name", "objects: [{kind: plane}]", "missing name"},
		{"duplicate name", "objects: [{name: a, kind: plane}, {name: a, kind: plane}]", "duplicate"},
		{"missing kind", "objects: [{name: a}]", "missing kind"},
		{"unknown kind", "objects: [{name: a, kind: sphere}]", "sphere"},
		{"too few sides", "objects: [{name: a, kind: prism, sides: 2}]", "at least 3"},
		{"negative grid", "objects: [{name: a, kind: grid, size: -1}]", "negative"},
		{"no boxes", "objects: [{name: a, kind: boxes}]", "empty"},
		{"inverted box", "objects: [{name: a, kind: boxes, boxes: [{min: [1, 0, 0], max: [0, 1, 1]}]}]", "not below"},
		{"unknown face", "objects: [{name: a, kind: boxes, boxes: [{min: [0, 0, 0], max: [1, 1, 1], tiles: {side: [2, 1]}}]}]", "side"},
		{"bad primitive", "objects: [{name: a, kind: plane, primitive: points}]", "points"},
		{"zero axis", "objects: [{name: a, kind: plane, transform: {axis: [0, 0, 0], angle: 30}}]", "zero axis"},
		{"grid too large", "objects: [{name: a, kind: grid, size: 300}]", "exceed"},
		{"prism too many sides", "objects: [{name: a, kind: prism, sides: 40000}]", "exceed"},
		{"cone too many sides", "objects: [{name: a, kind: cone, sides: 70000}]", "exceed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Parse([]byte(tt.yaml))
			if err == nil {
				_, err = l.Build()
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTooManyBoxes(t *testing.T) {
	var b strings.Builder
	b.WriteString("objects:\n  - name: maze\n    kind: boxes\n    boxes:\n")
	for i := 0; i < 2800; i++ {
		b.WriteString("      - {min: [0, 0, 0], max: [1, 1, 1]}\n")
	}
	l, err := Parse([]byte(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Build(); err == nil || !strings.Contains(err.Error(), "2800 boxes") {
		t.Errorf("Build error = %v, want a 2800 boxes capacity error", err)
	}
}

func TestLargestGridBuilds(t *testing.T) {
	l, err := Parse([]byte("objects: [{name: a, kind: grid, size: 255}]"))
	if err != nil {
		t.Fatal(err)
	}
	objects, err := l.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := objects[0].Mesh.VertexCount(); got != mesh.MaxVertices {
		t.Errorf("vertices = %d, want %d", got, mesh.MaxVertices)
	}
}

func TestRigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"one light", `
lights:
  ambient: {color: [1, 1, 1], strength: 0.5}
  points:
    - {position: [0, 1, 0], range: 10, color: [1, 1, 1], strength: 1}
objects: [{name: a, kind: plane}]
`},
		{"zero range", `
lights:
  ambient: {color: [1, 1, 1], strength: 0.5}
  points:
    - {position: [0, 1, 0], range: 0, color: [1, 1, 1], strength: 1}
    - {position: [0, 1, 0], range: 10, color: [1, 1, 1], strength: 1}
objects: [{name: a, kind: plane}]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := l.Rig(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, castleLayout, 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(l.Objects) != len(Castle().Objects) {
		t.Errorf("loaded %d objects, want %d", len(l.Objects), len(Castle().Objects))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte("objects: [{name: a, kind: plane}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if _, ok := w.Poll(); ok {
		t.Fatal("update pending before any change")
	}

	changed := "objects: [{name: a, kind: plane}, {name: b, kind: grid, size: 2}]\n"
	if err := os.WriteFile(path, []byte(changed), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-w.Updates():
		if u.Err != nil {
			t.Fatalf("reload error: %v", u.Err)
		}
		if len(u.Layout.Objects) != 2 {
			t.Errorf("reloaded %d objects, want 2", len(u.Layout.Objects))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherReportsBadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte("objects: [{name: a, kind: plane}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("objects: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-w.Updates():
		if u.Err == nil {
			t.Error("expected parse error from reload")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}
