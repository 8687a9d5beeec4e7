package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBoundsOf(t *testing.T) {
	box := BoundsOf(CreateCubeCorners().Positions)
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, box.Min)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, box.Max)
	assert.Equal(t, mgl32.Vec3{}, box.Center())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, box.Size())

	assert.Equal(t, AABB{}, BoundsOf(nil))
}

func TestFitMatrix(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{2, 0, 0}, Max: mgl32.Vec3{6, 2, 1}}
	m := box.FitMatrix(1)

	lo := mgl32.TransformCoordinate(box.Min, m)
	hi := mgl32.TransformCoordinate(box.Max, m)
	assert.True(t, lo.ApproxEqualThreshold(mgl32.Vec3{-0.5, -0.25, -0.125}, 1e-6), "got %v", lo)
	assert.True(t, hi.ApproxEqualThreshold(mgl32.Vec3{0.5, 0.25, 0.125}, 1e-6), "got %v", hi)
}

func TestFitMatrixDegenerate(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{1, 1, 1}}
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 1, 1}, box.FitMatrix(2))
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{}, 1e-6))
}
