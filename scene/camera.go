package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection constants.
const (
	NearPlane = 0.01
	FarPlane  = 100.0
)

// Orientation and lens limits, in degrees.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
	MinFOV   = 1.0
	MaxFOV   = 90.0

	DefaultYaw = -90.0
	DefaultFOV = 45.0
)

// WorldUp is the fixed up direction used to build the camera basis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Movement is a direction relative to the camera.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

// Camera is a yaw/pitch fly camera. Its basis and matrices are derived from
// the current fields on every call; nothing is cached.
type Camera struct {
	Position mgl32.Vec3

	yaw    float32
	pitch  float32
	fov    float32
	aspect float32
}

// NewCamera returns a camera at pos looking down -Z.
func NewCamera(pos mgl32.Vec3, aspectRatio float32) *Camera {
	c := &Camera{
		Position: pos,
		yaw:      DefaultYaw,
		fov:      DefaultFOV,
		aspect:   1,
	}
	c.SetAspectRatio(aspectRatio)
	return c
}

func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Pitch() float32       { return c.pitch }
func (c *Camera) FOV() float32         { return c.fov }
func (c *Camera) AspectRatio() float32 { return c.aspect }

func (c *Camera) SetYaw(deg float32) { c.yaw = deg }

// SetPitch stores deg clamped to [MinPitch, MaxPitch] so the basis never
// flips at the poles.
func (c *Camera) SetPitch(deg float32) {
	c.pitch = mgl32.Clamp(deg, MinPitch, MaxPitch)
}

// SetFOV stores the vertical field of view clamped to [MinFOV, MaxFOV].
func (c *Camera) SetFOV(deg float32) {
	c.fov = mgl32.Clamp(deg, MinFOV, MaxFOV)
}

// SetAspectRatio ignores non-positive ratios.
func (c *Camera) SetAspectRatio(ratio float32) {
	if ratio > 0 {
		c.aspect = ratio
	}
}

// UpdateAspectRatio derives the ratio from a framebuffer size. A zero height
// (minimised window) leaves it unchanged.
func (c *Camera) UpdateAspectRatio(width, height int) {
	if width > 0 && height > 0 {
		c.aspect = float32(width) / float32(height)
	}
}

// Front is the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	return mgl32.Vec3{
		math32.Cos(pitch) * math32.Cos(yaw),
		math32.Sin(pitch),
		math32.Cos(pitch) * math32.Sin(yaw),
	}.Normalize()
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(WorldUp).Normalize()
}

func (c *Camera) Up() mgl32.Vec3 {
	front := c.Front()
	return front.Cross(WorldUp).Normalize().Cross(front).Normalize()
}

// ViewMatrix looks from Position along Front.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), WorldUp)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, NearPlane, FarPlane)
}

// Rotate adds yaw and pitch deltas in degrees.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.SetYaw(c.yaw + dYaw)
	c.SetPitch(c.pitch + dPitch)
}

// Zoom narrows the field of view by delta degrees.
func (c *Camera) Zoom(delta float32) {
	c.SetFOV(c.fov - delta)
}

// Move translates the camera by distance along a camera-relative direction.
// Up and Down follow WorldUp.
func (c *Camera) Move(dir Movement, distance float32) {
	var d mgl32.Vec3
	switch dir {
	case Forward:
		d = c.Front()
	case Backward:
		d = c.Front().Mul(-1)
	case Left:
		d = c.Right().Mul(-1)
	case Right:
		d = c.Right()
	case Up:
		d = WorldUp
	case Down:
		d = WorldUp.Mul(-1)
	}
	c.Position = c.Position.Add(d.Mul(distance))
}
