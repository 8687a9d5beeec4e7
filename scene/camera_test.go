package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func TestCameraBasisIsOrthonormal(t *testing.T) {
	c := NewCamera(mgl32.Vec3{1, 2, 3}, 4.0/3.0)
	for yaw := float32(0); yaw < 360; yaw += 7.5 {
		for pitch := float32(-88.5); pitch < 89; pitch += 3.5 {
			c.SetYaw(yaw)
			c.SetPitch(pitch)
			f, r, u := c.Front(), c.Right(), c.Up()

			assert.InDelta(t, 1, f.Len(), eps, "front yaw=%v pitch=%v", yaw, pitch)
			assert.InDelta(t, 1, r.Len(), eps, "right yaw=%v pitch=%v", yaw, pitch)
			assert.InDelta(t, 1, u.Len(), eps, "up yaw=%v pitch=%v", yaw, pitch)
			assert.InDelta(t, 0, f.Dot(r), eps)
			assert.InDelta(t, 0, f.Dot(u), eps)
			assert.InDelta(t, 0, r.Dot(u), eps)
			// Right-handed: right x up points back along -front.
			assert.True(t, r.Cross(u).ApproxEqualThreshold(f.Mul(-1), 1e-4), "handedness yaw=%v pitch=%v", yaw, pitch)
		}
	}
}

func TestCameraDefaultsLookDownNegativeZ(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 3}, 800.0/600.0)
	assert.True(t, c.Front().ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, eps))
	assert.True(t, c.Right().ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps))
	assert.True(t, c.Up().ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, eps))
	assert.Equal(t, float32(DefaultFOV), c.FOV())
}

func TestCameraPitchClamp(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 1)
	c.SetPitch(95)
	assert.Equal(t, float32(89), c.Pitch())
	c.SetPitch(-95)
	assert.Equal(t, float32(-89), c.Pitch())
	c.SetPitch(30)
	assert.Equal(t, float32(30), c.Pitch())

	c.Rotate(10, 100)
	assert.Equal(t, float32(89), c.Pitch())
	assert.Equal(t, float32(DefaultYaw+10), c.Yaw())
}

func TestCameraFOVClamp(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 1)
	c.SetFOV(0)
	assert.Equal(t, float32(1), c.FOV())
	c.SetFOV(95)
	assert.Equal(t, float32(90), c.FOV())

	c.SetFOV(45)
	c.Zoom(50)
	assert.Equal(t, float32(1), c.FOV())
	c.Zoom(-200)
	assert.Equal(t, float32(90), c.FOV())
}

func TestCameraAspectRatio(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 0)
	assert.Equal(t, float32(1), c.AspectRatio(), "non-positive ratios are ignored")

	c.UpdateAspectRatio(1600, 900)
	assert.InDelta(t, 16.0/9.0, c.AspectRatio(), eps)
	c.UpdateAspectRatio(1600, 0)
	assert.InDelta(t, 16.0/9.0, c.AspectRatio(), eps)
}

func TestCameraViewMatrix(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 3}, 1)
	view := c.ViewMatrix()

	// The camera position maps to the view-space origin.
	assert.True(t, view.Mul4x1(c.Position.Vec4(1)).Vec3().ApproxEqualThreshold(mgl32.Vec3{}, eps))
	// A point in front of the camera lands on -Z in view space.
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, p.Vec3().ApproxEqualThreshold(mgl32.Vec3{0, 0, -3}, eps))

	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 2}, WorldUp)
	assert.True(t, view.ApproxEqualThreshold(want, eps))
}

func TestCameraProjectionMatrix(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 2)
	c.SetFOV(60)
	want := mgl32.Perspective(mgl32.DegToRad(60), 2, NearPlane, FarPlane)
	assert.True(t, c.ProjectionMatrix().ApproxEqualThreshold(want, eps))

	// Near and far planes map to NDC depth -1 and 1.
	near := c.ProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -NearPlane, 1})
	far := c.ProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -FarPlane, 1})
	assert.InDelta(t, -1, near.Z()/near.W(), 1e-3)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-3)
}

func TestCameraMove(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 0, 3}, 1)
	c.Move(Forward, 2)
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, eps))
	c.Move(Right, 1)
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{1, 0, 1}, eps))
	c.Move(Up, 0.5)
	c.Move(Left, 1)
	c.Move(Backward, 2)
	c.Move(Down, 0.25)
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0.25, 3}, eps))
}
