// Package transform composes the per-object model, view and projection matrices.
package transform

import (
	"github.com/Faultbox/castle/internal/engine/camera"
	"github.com/Faultbox/castle/pkg/math"
)

// Common rotation axes.
var (
	XAxis = math.Vec3{X: 1}
	YAxis = math.Vec3{Y: 1}
	ZAxis = math.Vec3{Z: 1}
)

// Transform places an object: scale first, then rotate Angle degrees around
// Axis, then translate.
type Transform struct {
	Scale       math.Vec3
	Axis        math.Vec3
	Angle       float32
	Translation math.Vec3
}

// Identity returns a transform that leaves an object where it is.
func Identity() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}, Axis: XAxis}
}

// Matrix returns Translate * Rotate * Scale.
func (t Transform) Matrix() math.Mat4 {
	model := math.Translate(t.Translation)
	if t.Angle != 0 {
		model = model.Mul(math.Rotate(math.Radians(t.Angle), t.Axis))
	}
	return model.Mul(math.Scale(t.Scale))
}

// Matrices are uploaded as three separate uniforms so shaders can light in
// world or view space.
type Matrices struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
}

// MVP returns the combined Projection * View * Model.
func (m Matrices) MVP() math.Mat4 {
	return m.Projection.Mul(m.View).Mul(m.Model)
}

// Projection describes a perspective frustum.
type Projection struct {
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultProjection matches a square window with a 45 degree field of view.
func DefaultProjection() Projection {
	return Projection{FOV: 45, Aspect: 1, Near: 0.1, Far: 100}
}

// Matrix returns the perspective matrix.
func (p Projection) Matrix() math.Mat4 {
	return math.Perspective(math.Radians(p.FOV), p.Aspect, p.Near, p.Far)
}

// Pipeline turns a camera and a fixed projection into per-object matrices.
type Pipeline struct {
	camera     *camera.FlyCamera
	projection Projection
	proj       math.Mat4
}

// NewPipeline creates a pipeline for the given camera.
func NewPipeline(cam *camera.FlyCamera, p Projection) *Pipeline {
	return &Pipeline{
		camera:     cam,
		projection: p,
		proj:       p.Matrix(),
	}
}

// SetAspect updates the projection after a window resize.
func (p *Pipeline) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	p.projection.Aspect = aspect
	p.proj = p.projection.Matrix()
}

// Projection returns the current projection parameters.
func (p *Pipeline) Projection() Projection {
	return p.projection
}

// Object returns the matrices for one drawn object. The camera vectors are
// recomputed from yaw and pitch on every call.
func (p *Pipeline) Object(t Transform) Matrices {
	return Matrices{
		Model:      t.Matrix(),
		View:       p.camera.ViewMatrix(),
		Projection: p.proj,
	}
}
