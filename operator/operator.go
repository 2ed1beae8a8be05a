// Package operator assembles spin operators in a Bloch basis.
//
// Each operator is applied to the lead configuration of every Bloch function
// a. A resulting configuration y owned by function b contributes
//
//	h · Coeff(a, b) · conj(c_b(y)) / |c_b(y)|
//
// at (row b, column a), where h is the matrix element between the lead and y
// and c_b(y) is the coefficient of y in b. Configurations outside the basis
// (vanished orbits or another magnetization sector) are skipped.
package operator

import (
	"errors"
	"fmt"

	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/bloch"
	"github.com/hupe1980/trispin/sparse"
)

var (
	// ErrSzBroken is returned when an operator that changes the total
	// magnetization is applied to a fixed-magnetization basis.
	ErrSzBroken = errors.New("operator does not conserve Sz")

	// ErrSiteMismatch is returned when the site or phase lists differ in
	// length.
	ErrSiteMismatch = errors.New("site lists differ in length")
)

func checkSites(lists ...[]basis.BinaryBasis) error {
	for _, l := range lists[1:] {
		if len(l) != len(lists[0]) {
			return fmt.Errorf("%w: %d vs %d", ErrSiteMismatch, len(lists[0]), len(l))
		}
	}
	return nil
}

func checkBonds(s1, s2 []basis.BinaryBasis, gamma []complex128) error {
	if err := checkSites(s1, s2); err != nil {
		return err
	}
	if gamma != nil && len(gamma) != len(s1) {
		return fmt.Errorf("%w: %d bonds vs %d phases", ErrSiteMismatch, len(s1), len(gamma))
	}
	return nil
}

func checkSzConserving(set *bloch.BlochFuncSet, name string) error {
	if set.Sector().Restricted {
		return fmt.Errorf("%w: %s on sector %s", ErrSzBroken, name, set.Sector())
	}
	return nil
}

// assembler accumulates the matrix of one operator, column by column.
type assembler struct {
	set     *bloch.BlochFuncSet
	members map[basis.BinaryBasis]int32
	b       *sparse.Builder

	col  int
	orig *bloch.BlochFunc
}

func newAssembler(set *bloch.BlochFuncSet) *assembler {
	n := uint32(set.Len())
	return &assembler{
		set:     set,
		members: set.Members(),
		b:       sparse.NewBuilder(n, n),
	}
}

// columns calls fn with the lead of every Bloch function.
func (a *assembler) columns(fn func(lead basis.BinaryBasis)) {
	for i, bf := range a.set.All() {
		a.col, a.orig = i, bf
		fn(bf.Lead)
	}
}

// emit adds the contribution of h·|y> for the current column.
func (a *assembler) emit(y basis.BinaryBasis, h complex128) {
	row, phase, ok := bloch.FindLeadingState(y, a.set, a.members)
	if !ok {
		return
	}
	coeff := bloch.Coeff(a.orig, a.set.At(row))
	a.b.Add(uint32(row), uint32(a.col), h*complex(coeff, 0)*phase)
}

func (a *assembler) build() *sparse.CoordMatrix {
	return a.b.Build()
}

// sz returns the S^z eigenvalue of site s in dec.
func sz(dec, s basis.BinaryBasis) float64 {
	if dec.Has(s) {
		return 0.5
	}
	return -0.5
}
