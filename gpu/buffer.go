package gpu

import (
	"fmt"

	"go.uber.org/zap"

	"cube-renderer/geometry"
)

// Buffer owns the vertex array, vertex buffer and index buffer of one mesh.
// Its contents never change after NewBuffer returns.
type Buffer struct {
	ctx *Context

	vao uint32
	vbo uint32
	ebo uint32

	layout      geometry.Layout
	vertexCount int
	indexCount  int32
}

// NewBuffer interleaves blocks in the given order, checks the indices against
// the resulting vertex count and uploads both. Slot i of the attribute layout
// reads the i-th block. Nothing is allocated when validation fails.
func NewBuffer(ctx *Context, indices []uint32, blocks ...geometry.Block) (*Buffer, error) {
	data, _, err := geometry.Interleave(blocks...)
	if err != nil {
		return nil, fmt.Errorf("interleave: %w", err)
	}
	vertexCount, _ := blocks[0].VertexCount()
	if err := geometry.ValidateIndices(indices, vertexCount); err != nil {
		return nil, fmt.Errorf("indices: %w", err)
	}
	layout := geometry.NewLayout(blocks...)
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	drv := ctx.Driver()
	b := &Buffer{
		ctx:         ctx,
		layout:      layout,
		vertexCount: vertexCount,
		indexCount:  int32(len(indices)),
	}

	b.vao = drv.GenVertexArray()
	b.vbo = drv.GenBuffer()
	ctx.BindVertexArray(b.vao)

	drv.BindBuffer(ArrayBuffer, b.vbo)
	drv.BufferFloat32(ArrayBuffer, data)
	for _, a := range layout.Attributes {
		drv.VertexAttribPointer(a.Slot, a.Components, layout.Stride, a.Offset)
		drv.EnableVertexAttribArray(a.Slot)
	}

	b.ebo = drv.GenBuffer()
	drv.BindBuffer(ElementArrayBuffer, b.ebo)
	drv.BufferUint32(ElementArrayBuffer, indices)

	ctx.BindVertexArray(0)

	ctx.Logger().Debug("geometry uploaded",
		zap.Uint32("vao", b.vao),
		zap.Int("vertices", vertexCount),
		zap.Int("indices", len(indices)),
		zap.Int32("stride", layout.Stride))
	return b, nil
}

// Bind makes this buffer's attribute layout the active one.
func (b *Buffer) Bind() error {
	if b.vao == 0 {
		return ErrReleased
	}
	b.ctx.BindVertexArray(b.vao)
	return nil
}

// Draw issues one indexed triangle-list draw over every index. The buffer
// must be bound.
func (b *Buffer) Draw() error {
	if b.vao == 0 {
		return ErrReleased
	}
	if b.ctx.BoundVertexArray() != b.vao {
		return ErrLayoutNotBound
	}
	b.ctx.Driver().DrawTriangles(b.indexCount)
	return nil
}

func (b *Buffer) Layout() geometry.Layout { return b.layout }
func (b *Buffer) VertexCount() int        { return b.vertexCount }
func (b *Buffer) IndexCount() int         { return int(b.indexCount) }

// Triangles returns the number of triangles drawn by Draw.
func (b *Buffer) Triangles() int { return int(b.indexCount) / 3 }

// Release deletes every driver object owned by the buffer. It is safe to call
// more than once.
func (b *Buffer) Release() {
	if b.vao == 0 {
		return
	}
	drv := b.ctx.Driver()
	drv.DeleteBuffer(b.ebo)
	drv.DeleteBuffer(b.vbo)
	drv.DeleteVertexArray(b.vao)
	b.ctx.forgetVertexArray(b.vao)
	b.ctx.Logger().Debug("geometry released", zap.Uint32("vao", b.vao))
	b.vao, b.vbo, b.ebo = 0, 0, 0
}
