package lighting

import (
	"testing"

	"github.com/Faultbox/castle/pkg/math"
)

func TestNewPointLight(t *testing.T) {
	l := NewPointLight(math.Vec3{}, 10, math.Vec3{X: 1}, 2)

	if l.Constant != 1 {
		t.Errorf("constant %v, want 1", l.Constant)
	}
	if l.Linear != 0.45 {
		t.Errorf("linear %v, want 0.45", l.Linear)
	}
	if l.Exponent != 0.75 {
		t.Errorf("exponent %v, want 0.75", l.Exponent)
	}
}

func TestAttenuationFalloff(t *testing.T) {
	l := NewPointLight(math.Vec3{}, 10, math.Vec3{X: 1}, 1)

	if a := l.Attenuation(0); a != 1 {
		t.Errorf("attenuation at 0 = %v, want 1", a)
	}
	prev := float32(1)
	for d := float32(1); d <= 10; d++ {
		a := l.Attenuation(d)
		if a >= prev {
			t.Fatalf("attenuation not decreasing at %v: %v >= %v", d, a, prev)
		}
		prev = a
	}
	// At the range edge only a few percent remains.
	if prev > 0.02 {
		t.Errorf("attenuation at range = %v, want under 0.02", prev)
	}
}

func TestNewPointLightNonPositiveRange(t *testing.T) {
	l := NewPointLight(math.Vec3{}, 0, math.Vec3{}, 1)
	if l.Range != 1 {
		t.Errorf("range %v, want fallback 1", l.Range)
	}
}

func TestCastleRig(t *testing.T) {
	r := CastleRig()
	if r.Ambient.Strength != 0.5 {
		t.Errorf("ambient strength %v, want 0.5", r.Ambient.Strength)
	}
	if r.Points[0].Position != (math.Vec3{X: 7.5, Y: 1, Z: -10}) {
		t.Errorf("first light at %v", r.Points[0].Position)
	}
	for i, p := range r.Points {
		if p.Range != 10 {
			t.Errorf("light %d range %v, want 10", i, p.Range)
		}
	}
}

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()
	if m.SpecularStrength <= 0 || m.Shininess < 1 {
		t.Errorf("material %+v has no usable highlight", m)
	}
}
