package scene

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// BoundsOf returns the box around a flat xyz position array.
func BoundsOf(positions []float32) AABB {
	if len(positions) < 3 {
		return AABB{}
	}
	first := mgl32.Vec3{positions[0], positions[1], positions[2]}
	box := AABB{Min: first, Max: first}
	for i := 3; i+2 < len(positions); i += 3 {
		for c := 0; c < 3; c++ {
			box.Min[c] = min(box.Min[c], positions[i+c])
			box.Max[c] = max(box.Max[c], positions[i+c])
		}
	}
	return box
}

func (box AABB) Center() mgl32.Vec3 { return box.Min.Add(box.Max).Mul(0.5) }
func (box AABB) Size() mgl32.Vec3   { return box.Max.Sub(box.Min) }

// FitMatrix scales the box uniformly so its longest edge is size and moves
// its center to the origin. A degenerate box is only centered.
func (box AABB) FitMatrix(size float32) mgl32.Mat4 {
	c := box.Center()
	center := mgl32.Translate3D(-c[0], -c[1], -c[2])
	s := box.Size()
	longest := max(s[0], s[1], s[2])
	if longest <= 0 {
		return center
	}
	k := size / longest
	return mgl32.Scale3D(k, k, k).Mul4(center)
}
