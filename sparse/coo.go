// Package sparse holds operator matrices in coordinate (COO) form and hands
// their buffers to a numerical host.
package sparse

import (
	"fmt"
	"math/cmplx"
	"slices"
)

// DropTolerance is the magnitude at or below which a summed entry is
// treated as zero and omitted.
const DropTolerance = 1e-14

// CoordMatrix is a square or rectangular complex matrix in COO form.
// Entries are unique and sorted by (row, col).
type CoordMatrix struct {
	Data  []complex128
	Col   []uint32
	Row   []uint32
	NCols uint32
	NRows uint32
}

// Nnz returns the number of stored entries.
func (m *CoordMatrix) Nnz() int { return len(m.Data) }

// At returns the entry at (row, col), zero if absent.
func (m *CoordMatrix) At(row, col uint32) complex128 {
	i, ok := slices.BinarySearchFunc(m.Row, row, func(r, target uint32) int {
		switch {
		case r < target:
			return -1
		case r > target:
			return 1
		}
		return 0
	})
	if !ok {
		return 0
	}
	for ; i < len(m.Row) && m.Row[i] == row; i++ {
		if m.Col[i] == col {
			return m.Data[i]
		}
	}
	return 0
}

// Dense expands the matrix. Intended for small matrices and tests.
func (m *CoordMatrix) Dense() [][]complex128 {
	out := make([][]complex128, m.NRows)
	for i := range out {
		out[i] = make([]complex128, m.NCols)
	}
	for k, v := range m.Data {
		out[m.Row[k]][m.Col[k]] = v
	}
	return out
}

// IsHermitian reports whether m equals its conjugate transpose within tol.
func (m *CoordMatrix) IsHermitian(tol float64) bool {
	if m.NRows != m.NCols {
		return false
	}
	for k, v := range m.Data {
		if cmplx.Abs(v-cmplx.Conj(m.At(m.Col[k], m.Row[k]))) > tol {
			return false
		}
	}
	return true
}

// Trace returns the sum of the diagonal entries.
func (m *CoordMatrix) Trace() complex128 {
	var tr complex128
	for k, v := range m.Data {
		if m.Row[k] == m.Col[k] {
			tr += v
		}
	}
	return tr
}

func (m *CoordMatrix) String() string {
	return fmt.Sprintf("CoordMatrix(%dx%d, nnz=%d)", m.NRows, m.NCols, m.Nnz())
}

// Builder accumulates matrix entries, summing duplicates.
type Builder struct {
	nrows, ncols uint32
	entries      map[uint64]complex128
}

// NewBuilder creates a Builder for an nrows × ncols matrix.
func NewBuilder(nrows, ncols uint32) *Builder {
	return &Builder{
		nrows:   nrows,
		ncols:   ncols,
		entries: make(map[uint64]complex128),
	}
}

// Add adds v to the entry at (row, col). It panics if the position is out of
// range.
func (b *Builder) Add(row, col uint32, v complex128) {
	if row >= b.nrows || col >= b.ncols {
		panic(fmt.Sprintf("sparse: entry (%d, %d) outside %dx%d", row, col, b.nrows, b.ncols))
	}
	b.entries[uint64(row)<<32|uint64(col)] += v
}

// Build returns the accumulated matrix sorted by (row, col). Entries whose
// sum vanishes are dropped. The Builder can be reused afterwards.
func (b *Builder) Build() *CoordMatrix {
	keys := make([]uint64, 0, len(b.entries))
	for k, v := range b.entries {
		if cmplx.Abs(v) > DropTolerance {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	m := &CoordMatrix{
		Data:  make([]complex128, len(keys)),
		Col:   make([]uint32, len(keys)),
		Row:   make([]uint32, len(keys)),
		NCols: b.ncols,
		NRows: b.nrows,
	}
	for i, k := range keys {
		m.Data[i] = b.entries[k]
		m.Row[i] = uint32(k >> 32)
		m.Col[i] = uint32(k)
	}
	clear(b.entries)
	return m
}
