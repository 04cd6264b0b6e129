// Package camera provides the first-person fly camera used to walk the scene.
package camera

import (
	"github.com/Faultbox/castle/pkg/math"
)

// Defaults restored by Reset.
var (
	DefaultPosition = math.Vec3{X: 5, Y: 3, Z: 10}
	DefaultFront    = math.Vec3{X: 0, Y: 0, Z: -1}
	WorldUp         = math.Vec3{X: 0, Y: 1, Z: 0}
)

const (
	DefaultYaw   float32 = -90
	DefaultPitch float32 = 0

	DefaultMoveSpeed float32 = 0.1
	DefaultTurnSpeed float32 = 0.05
)

// FlyCamera moves freely through the world, oriented by yaw and pitch in degrees.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	// MoveSpeed is the distance covered per tick, TurnSpeed the degrees per pixel of pointer travel.
	MoveSpeed float32
	TurnSpeed float32

	// PitchLimit clamps pitch to [-PitchLimit, PitchLimit] degrees. Zero leaves pitch free.
	PitchLimit float32

	worldUp math.Vec3
	front   math.Vec3
	right   math.Vec3
	up      math.Vec3
}

// NewFlyCamera creates a camera at the default position with default speeds.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		MoveSpeed: DefaultMoveSpeed,
		TurnSpeed: DefaultTurnSpeed,
	}
	c.Reset()
	return c
}

// Reset restores position, orientation and world up. Speeds and limits are kept.
func (c *FlyCamera) Reset() {
	c.Position = DefaultPosition
	c.front = DefaultFront
	c.worldUp = WorldUp
	c.Pitch = DefaultPitch
	c.Yaw = DefaultYaw
	c.UpdateVectors()
}

// UpdateVectors recomputes front, right and up from yaw and pitch.
func (c *FlyCamera) UpdateVectors() {
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(c.Pitch)

	c.front = math.Vec3{X: cy * cp, Y: sp, Z: sy * cp}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() math.Vec3 { return c.front }

// Right returns the unit strafe direction.
func (c *FlyCamera) Right() math.Vec3 { return c.right }

// Up returns the camera's unit up direction.
func (c *FlyCamera) Up() math.Vec3 { return c.up }

// Turn applies a pointer delta in pixels. Horizontal travel is inverted so the
// pointer drags the scene; vertical travel adds to pitch.
func (c *FlyCamera) Turn(dx, dy int) {
	c.Pitch += float32(dy) * c.TurnSpeed
	c.Yaw -= float32(dx) * c.TurnSpeed

	if c.PitchLimit > 0 {
		if c.Pitch > c.PitchLimit {
			c.Pitch = c.PitchLimit
		}
		if c.Pitch < -c.PitchLimit {
			c.Pitch = -c.PitchLimit
		}
	}
}

// Tick integrates one fixed step of movement from the held directions.
// Of each opposing pair only one applies: forward, left and up win.
func (c *FlyCamera) Tick(in Intent) {
	c.UpdateVectors()

	switch {
	case in.Forward:
		c.Position = c.Position.Add(c.front.Scale(c.MoveSpeed))
	case in.Backward:
		c.Position = c.Position.Sub(c.front.Scale(c.MoveSpeed))
	}

	switch {
	case in.Left:
		c.Position = c.Position.Sub(c.right.Scale(c.MoveSpeed))
	case in.Right:
		c.Position = c.Position.Add(c.right.Scale(c.MoveSpeed))
	}

	switch {
	case in.Up:
		c.Position.Y += c.MoveSpeed
	case in.Down:
		c.Position.Y -= c.MoveSpeed
	}
}

// ViewMatrix recomputes the camera vectors and returns the view matrix.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	c.UpdateVectors()
	return math.LookAt(c.Position, c.Position.Add(c.front), c.up)
}
