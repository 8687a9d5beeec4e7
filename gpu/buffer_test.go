package gpu_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-renderer/geometry"
	"cube-renderer/gpu"
)

var triangle = []float32{
	0, 0, 0,
	1, 0, 0,
	0, 1, 0,
}

func TestNewBufferUploadsInterleavedData(t *testing.T) {
	ctx, rec := newContext(t)
	normals := []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}
	uvs := []float32{0, 0, 1, 0, 0, 1}

	b, err := gpu.NewBuffer(ctx, []uint32{0, 1, 2},
		geometry.Positions(triangle), geometry.Normals(normals), geometry.TexCoords(uvs))
	require.NoError(t, err)

	assert.Equal(t, 3, b.VertexCount())
	assert.Equal(t, 3, b.IndexCount())
	assert.Equal(t, 1, b.Triangles())
	assert.Equal(t, int32(32), b.Layout().Stride)

	uploads := rec.Find("BufferFloat32")
	require.Len(t, uploads, 1)
	data := uploads[0].Args[1].([]float32)
	assert.Len(t, data, 24)
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1, 1, 0}, data[8:16])

	ptrs := rec.Find("VertexAttribPointer")
	require.Len(t, ptrs, 3)
	assert.Equal(t, []any{uint32(0), int32(3), int32(32), 0}, ptrs[0].Args)
	assert.Equal(t, []any{uint32(1), int32(3), int32(32), 12}, ptrs[1].Args)
	assert.Equal(t, []any{uint32(2), int32(2), int32(32), 24}, ptrs[2].Args)

	// The vertex array is left unbound after setup.
	assert.Zero(t, ctx.BoundVertexArray())
}

func TestNewBufferRejectsBadInputBeforeAllocating(t *testing.T) {
	ctx, rec := newContext(t)

	_, err := gpu.NewBuffer(ctx, []uint32{0, 1, 3}, geometry.Positions(triangle))
	assert.ErrorIs(t, err, geometry.ErrIndexOutOfRange)

	_, err = gpu.NewBuffer(ctx, nil, geometry.Positions(triangle))
	assert.ErrorIs(t, err, geometry.ErrNoIndices)

	_, err = gpu.NewBuffer(ctx, []uint32{0, 1, 2},
		geometry.Positions(triangle), geometry.TexCoords([]float32{0, 0}))
	assert.ErrorIs(t, err, geometry.ErrVertexCountMismatch)

	_, err = gpu.NewBuffer(ctx, []uint32{0, 1, 2})
	assert.ErrorIs(t, err, geometry.ErrNoBlocks)

	assert.Empty(t, rec.Calls())
}

func TestDrawRequiresBoundLayout(t *testing.T) {
	ctx, rec := newContext(t)
	a, err := gpu.NewBuffer(ctx, []uint32{0, 1, 2}, geometry.Positions(triangle))
	require.NoError(t, err)
	b, err := gpu.NewBuffer(ctx, []uint32{0, 2, 1}, geometry.Positions(triangle))
	require.NoError(t, err)

	assert.ErrorIs(t, a.Draw(), gpu.ErrLayoutNotBound)

	require.NoError(t, b.Bind())
	assert.ErrorIs(t, a.Draw(), gpu.ErrLayoutNotBound)
	assert.Zero(t, rec.Count("DrawTriangles"))

	require.NoError(t, a.Bind())
	require.NoError(t, a.Draw())
	draws := rec.Find("DrawTriangles")
	require.Len(t, draws, 1)
	assert.Equal(t, int32(3), draws[0].Args[0])
	assert.Equal(t, rec.BoundVertexArray(), draws[0].Args[1])
}

func TestBufferRelease(t *testing.T) {
	ctx, rec := newContext(t)
	b, err := gpu.NewBuffer(ctx, []uint32{0, 1, 2}, geometry.Positions(triangle))
	require.NoError(t, err)
	require.NoError(t, b.Bind())
	assert.Equal(t, 3, rec.Live())

	b.Release()
	b.Release()
	assert.Zero(t, rec.Live())
	assert.Zero(t, ctx.BoundVertexArray())
	assert.ErrorIs(t, b.Bind(), gpu.ErrReleased)
	assert.ErrorIs(t, b.Draw(), gpu.ErrReleased)
}

func TestContextSkipsRedundantBinds(t *testing.T) {
	ctx, rec := newContext(t)
	ctx.UseProgram(4)
	ctx.UseProgram(4)
	ctx.BindVertexArray(2)
	ctx.BindVertexArray(2)
	ctx.UseProgram(5)

	assert.Equal(t, []string{"UseProgram", "BindVertexArray", "UseProgram"}, rec.Ops())
	assert.Equal(t, uint32(5), ctx.CurrentProgram())
}

func TestNewTextureFlipsRows(t *testing.T) {
	ctx, rec := newContext(t)

	// 1x2 image: red on top, blue on the bottom.
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})

	tex, err := gpu.NewTexture(ctx, img)
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 2, h)

	uploads := rec.Find("TexImage2DRGBA")
	require.Len(t, uploads, 1)
	assert.Equal(t, []byte{0, 0, 255, 255, 255, 0, 0, 255}, uploads[0].Args[2])

	require.NoError(t, tex.Bind(gpu.SpecularUnit))
	assert.Equal(t, tex.Handle(), rec.TextureAt(gpu.SpecularUnit))
	assert.Equal(t, tex.Handle(), ctx.BoundTexture(gpu.SpecularUnit))

	tex.Release()
	assert.Zero(t, rec.Live())
	assert.Zero(t, ctx.BoundTexture(gpu.SpecularUnit))
	assert.ErrorIs(t, tex.Bind(0), gpu.ErrReleased)
}

func TestNewTextureRejectsEmptyImage(t *testing.T) {
	ctx, _ := newContext(t)
	_, err := gpu.NewTexture(ctx, image.NewRGBA(image.Rect(0, 0, 0, 0)))
	assert.Error(t, err)
	_, err = gpu.NewTexture(ctx, nil)
	assert.Error(t, err)
}
