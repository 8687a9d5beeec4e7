package geometry

import "fmt"

// Attribute describes one vertex shader input slot inside a packed buffer.
type Attribute struct {
	Slot       uint32
	Components int32
	Offset     int // bytes from the start of the vertex
}

// Layout is the full per-vertex description of an interleaved buffer.
type Layout struct {
	Attributes []Attribute
	Stride     int32 // bytes per vertex
}

// NewLayout binds slot i to the i-th block, placed right after the blocks
// before it.
func NewLayout(blocks ...Block) Layout {
	var l Layout
	offset := 0
	for i, b := range blocks {
		l.Attributes = append(l.Attributes, Attribute{
			Slot:       uint32(i),
			Components: int32(b.Stride),
			Offset:     offset,
		})
		offset += b.Stride * FloatSize
	}
	l.Stride = int32(offset)
	return l
}

// Validate reports a gap or an overlap between attributes.
func (l Layout) Validate() error {
	next := 0
	for _, a := range l.Attributes {
		if a.Components <= 0 {
			return fmt.Errorf("geometry: slot %d has %d components", a.Slot, a.Components)
		}
		if a.Offset != next {
			return fmt.Errorf("geometry: slot %d starts at byte %d, expected %d", a.Slot, a.Offset, next)
		}
		next += int(a.Components) * FloatSize
	}
	if next != int(l.Stride) {
		return fmt.Errorf("geometry: attributes cover %d bytes of a %d byte stride", next, l.Stride)
	}
	return nil
}
