// Package lighting describes the ambient and point lights fed to the scene shader.
package lighting

import "github.com/Faultbox/castle/pkg/math"

// PointLightCount is the number of point lights the scene shader declares.
const PointLightCount = 2

// AmbientLight lights every fragment uniformly.
type AmbientLight struct {
	Color    math.Vec3
	Strength float32
}

// PointLight is a diffuse light with distance attenuation
// 1 / (Constant + Linear*d + Exponent*d^2).
type PointLight struct {
	Position math.Vec3
	Color    math.Vec3
	Strength float32

	Range    float32
	Constant float32
	Linear   float32
	Exponent float32
}

// NewPointLight derives the attenuation terms from the light's range.
func NewPointLight(position math.Vec3, lightRange float32, color math.Vec3, strength float32) PointLight {
	if lightRange <= 0 {
		lightRange = 1
	}
	return PointLight{
		Position: position,
		Color:    color,
		Strength: strength,
		Range:    lightRange,
		Constant: 1,
		Linear:   4.5 / lightRange,
		Exponent: 75 / (lightRange * lightRange),
	}
}

// Attenuation returns the fraction of the light's strength left at distance d.
func (l PointLight) Attenuation(d float32) float32 {
	return 1 / (l.Constant + l.Linear*d + l.Exponent*d*d)
}

// Material holds the specular response of a surface.
type Material struct {
	SpecularStrength float32
	Shininess        float32
}

// DefaultMaterial is a mild highlight applied to every surface.
func DefaultMaterial() Material {
	return Material{SpecularStrength: 0.5, Shininess: 32}
}

// Rig is the full light setup of one scene.
type Rig struct {
	Ambient AmbientLight
	Points  [PointLightCount]PointLight
}

// CastleRig returns a white ambient fill with a yellow light over the back
// of the courtyard and a blue one near the left wall.
func CastleRig() Rig {
	return Rig{
		Ambient: AmbientLight{Color: math.Vec3{X: 1, Y: 1, Z: 1}, Strength: 0.5},
		Points: [PointLightCount]PointLight{
			NewPointLight(math.Vec3{X: 7.5, Y: 1, Z: -10}, 10, math.Vec3{X: 1, Y: 1, Z: 0}, 10),
			NewPointLight(math.Vec3{X: -1.5, Y: 1, Z: -5}, 10, math.Vec3{X: 0, Y: 0, Z: 5}, 10),
		},
	}
}
