package sparse

import "unsafe"

// Buffer is a contiguous block of T whose ownership has been transferred out
// of a CoordMatrix.
type Buffer[T any] struct {
	data []T
}

// Len returns the number of elements.
func (b Buffer[T]) Len() int { return len(b.data) }

// Pointer returns the address of the first element, or nil for an empty
// buffer. The memory stays valid as long as the Buffer is reachable.
func (b Buffer[T]) Pointer() *T {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.SliceData(b.data)
}

// Slice returns the elements.
func (b Buffer[T]) Slice() []T { return b.data }

// Exported is a CoordMatrix whose buffers now belong to the receiver. The
// receiver is solely responsible for them; the source matrix is left empty.
type Exported struct {
	Data  Buffer[complex128]
	Col   Buffer[uint32]
	Row   Buffer[uint32]
	NCols uint32
	NRows uint32
}

// Export moves the buffers of m into an Exported value and empties m.
// Export is one-way: nothing in this package reads the buffers afterwards.
func (m *CoordMatrix) Export() Exported {
	e := Exported{
		Data:  Buffer[complex128]{data: m.Data},
		Col:   Buffer[uint32]{data: m.Col},
		Row:   Buffer[uint32]{data: m.Row},
		NCols: m.NCols,
		NRows: m.NRows,
	}
	m.Data, m.Col, m.Row = nil, nil, nil
	return e
}
