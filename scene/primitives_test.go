package scene

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-renderer/geometry"
)

func TestCubeCorners(t *testing.T) {
	d := CreateCubeCorners()
	assert.Equal(t, 8, d.VertexCount())
	require.Len(t, d.Indices, 36)
	assert.Equal(t, uint32(7), slices.Max(d.Indices))
	assert.NoError(t, geometry.ValidateIndices(d.Indices, d.VertexCount()))
	assert.Len(t, d.Blocks(), 1)

	for i := 0; i < len(d.Positions); i++ {
		assert.InDelta(t, 0.5, abs(d.Positions[i]), 1e-6)
	}
}

func TestCubeFaces(t *testing.T) {
	d := CreateCube(2)
	assert.Equal(t, 24, d.VertexCount())
	assert.Len(t, d.Normals, 24*3)
	assert.Len(t, d.TexCoords, 24*2)
	require.Len(t, d.Indices, 36)
	assert.Equal(t, uint32(23), slices.Max(d.Indices))
	assert.Len(t, d.Blocks(), 3)

	pos := func(i uint32) mgl32.Vec3 {
		return mgl32.Vec3{d.Positions[i*3], d.Positions[i*3+1], d.Positions[i*3+2]}
	}
	nrm := func(i uint32) mgl32.Vec3 {
		return mgl32.Vec3{d.Normals[i*3], d.Normals[i*3+1], d.Normals[i*3+2]}
	}

	for tri := 0; tri < len(d.Indices); tri += 3 {
		a, b, c := d.Indices[tri], d.Indices[tri+1], d.Indices[tri+2]
		n := nrm(a)
		// Every vertex of a face sits on the face plane at distance 1.
		for _, v := range []uint32{a, b, c} {
			assert.InDelta(t, 1, pos(v).Dot(n), 1e-6)
			assert.Equal(t, n, nrm(v))
		}
		// Counter-clockwise from outside: the winding normal points along n.
		winding := pos(b).Sub(pos(a)).Cross(pos(c).Sub(pos(a)))
		assert.Greater(t, winding.Dot(n), float32(0), "triangle %d", tri/3)
	}
}

func TestMeshDataBlocksOrder(t *testing.T) {
	d := CreateCube(1)
	blocks := d.Blocks()
	assert.Equal(t, geometry.PositionStride, blocks[0].Stride)
	assert.Equal(t, geometry.NormalStride, blocks[1].Stride)
	assert.Equal(t, geometry.TexCoordStride, blocks[2].Stride)

	d.Normals = nil
	assert.Len(t, d.Blocks(), 1, "texcoords need normals")
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
