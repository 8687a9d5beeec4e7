// Package geometry holds the CPU side of vertex data: attribute blocks, the
// interleaving merge that packs them into one vertex buffer, and the attribute
// layout that tells the GPU how to read it back.
package geometry

import (
	"errors"
	"fmt"
)

// Standard per-vertex strides, in float32 components.
const (
	PositionStride = 3
	NormalStride   = 3
	TexCoordStride = 2
)

// FloatSize is the size of one vertex component in bytes.
const FloatSize = 4

var (
	ErrBadStride           = errors.New("geometry: stride must be positive and divide the block length")
	ErrVertexCountMismatch = errors.New("geometry: blocks describe different vertex counts")
	ErrNoBlocks            = errors.New("geometry: at least one attribute block is required")
	ErrIndexOutOfRange     = errors.New("geometry: index references a vertex that does not exist")
	ErrNoIndices           = errors.New("geometry: index list is empty")
)

// Block is one attribute array, e.g. every vertex position one after another.
type Block struct {
	Data   []float32
	Stride int
}

// Positions, Normals and TexCoords wrap an array with its standard stride.
func Positions(data []float32) Block { return Block{Data: data, Stride: PositionStride} }
func Normals(data []float32) Block   { return Block{Data: data, Stride: NormalStride} }
func TexCoords(data []float32) Block { return Block{Data: data, Stride: TexCoordStride} }

// VertexCount returns how many vertices the block describes.
func (b Block) VertexCount() (int, error) {
	if b.Stride <= 0 || len(b.Data)%b.Stride != 0 {
		return 0, fmt.Errorf("%w: length %d, stride %d", ErrBadStride, len(b.Data), b.Stride)
	}
	return len(b.Data) / b.Stride, nil
}

// Merge interleaves two attribute arrays. Vertex i of the result is
// a[i*aStride : (i+1)*aStride] followed by b[i*bStride : (i+1)*bStride].
func Merge(a []float32, aStride int, b []float32, bStride int) ([]float32, error) {
	na, err := Block{Data: a, Stride: aStride}.VertexCount()
	if err != nil {
		return nil, err
	}
	nb, err := Block{Data: b, Stride: bStride}.VertexCount()
	if err != nil {
		return nil, err
	}
	if na != nb {
		return nil, fmt.Errorf("%w: %d vs %d", ErrVertexCountMismatch, na, nb)
	}

	stride := aStride + bStride
	out := make([]float32, len(a)+len(b))
	for i := 0; i < na; i++ {
		copy(out[i*stride:i*stride+aStride], a[i*aStride:i*aStride+aStride])
		copy(out[i*stride+aStride:(i+1)*stride], b[i*bStride:i*bStride+bStride])
	}
	return out, nil
}

// Interleave merges the blocks left to right and returns the packed data with
// its per-vertex stride in components.
func Interleave(blocks ...Block) ([]float32, int, error) {
	if len(blocks) == 0 {
		return nil, 0, ErrNoBlocks
	}
	if _, err := blocks[0].VertexCount(); err != nil {
		return nil, 0, err
	}

	data := blocks[0].Data
	stride := blocks[0].Stride
	for _, b := range blocks[1:] {
		merged, err := Merge(data, stride, b.Data, b.Stride)
		if err != nil {
			return nil, 0, err
		}
		data = merged
		stride += b.Stride
	}
	return data, stride, nil
}

// ValidateIndices checks a triangle list against the vertex count.
func ValidateIndices(indices []uint32, vertexCount int) error {
	if len(indices) == 0 {
		return ErrNoIndices
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("geometry: triangle list length %d is not a multiple of 3", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= vertexCount {
			return fmt.Errorf("%w: indices[%d] = %d, vertex count %d", ErrIndexOutOfRange, i, idx, vertexCount)
		}
	}
	return nil
}
