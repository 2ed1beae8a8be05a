package bloch

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"math/cmplx"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/trispin/basis"
)

// NormThreshold is the norm at or below which an orbit is considered to
// vanish at the requested momentum.
const NormThreshold = 1e-8

// BlochFunc is one symmetry-adapted basis vector.
type BlochFunc struct {
	// Lead is the canonical representative of the orbit.
	Lead basis.BinaryBasis
	// Decs maps every configuration of the orbit to its summed phase.
	Decs map[basis.BinaryBasis]complex128
	// Norm is sqrt(Σ|c|²) over Decs.
	Norm float64
}

func norm(decs map[basis.BinaryBasis]complex128) float64 {
	var sum float64
	for _, c := range decs {
		sum += real(c)*real(c) + imag(c)*imag(c)
	}
	return math.Sqrt(sum)
}

// Phase returns the unit-modulus conjugate of the coefficient of dec, or
// false if dec is not a member.
func (bf *BlochFunc) Phase(dec basis.BinaryBasis) (complex128, bool) {
	p, ok := bf.Decs[dec]
	if !ok {
		return 0, false
	}
	a := cmplx.Abs(p)
	if a <= NormThreshold {
		return 0, false
	}
	return cmplx.Conj(p) / complex(a, 0), true
}

// Stats summarizes one orbit scan.
type Stats struct {
	// Scanned is the size of the scan universe.
	Scanned uint64
	// Orbits is the number of distinct orbits found.
	Orbits uint64
	// Kept is the number of orbits with a non-vanishing norm.
	Kept uint64
	// Vanished is the number of orbits rejected by NormThreshold.
	Vanished uint64
	// DiscardedConfigs is the number of configurations in vanished orbits.
	DiscardedConfigs uint64
}

func (s *Stats) add(o Stats) {
	s.Orbits += o.Orbits
	s.Kept += o.Kept
	s.Vanished += o.Vanished
	s.DiscardedConfigs += o.DiscardedConfigs
}

// BlochFuncSet is an immutable collection of Bloch functions sorted by Lead.
type BlochFuncSet struct {
	sector    Sector
	funcs     []*BlochFunc
	stats     Stats
	discarded *roaring64.Bitmap

	membersOnce sync.Once
	members     map[basis.BinaryBasis]int32
}

func newSet(sector Sector, funcs []*BlochFunc, discarded *roaring64.Bitmap, stats Stats) *BlochFuncSet {
	slices.SortFunc(funcs, func(a, b *BlochFunc) int {
		return cmp.Compare(a.Lead.Uint64(), b.Lead.Uint64())
	})
	if discarded == nil {
		discarded = roaring64.New()
	}
	return &BlochFuncSet{
		sector:    sector,
		funcs:     funcs,
		stats:     stats,
		discarded: discarded,
	}
}

// Restore rebuilds a set from persisted parts. Norms are recomputed from
// the coefficients and every function is checked against the sector.
func Restore(sector Sector, funcs []*BlochFunc, discarded *roaring64.Bitmap, stats Stats) (*BlochFuncSet, error) {
	if err := sector.Validate(); err != nil {
		return nil, err
	}
	n := sector.Shape.Sites()
	for _, bf := range funcs {
		if len(bf.Decs) == 0 {
			return nil, fmt.Errorf("%w: empty orbit for lead %s", ErrSectorMismatch, bf.Lead)
		}
		if _, ok := bf.Decs[bf.Lead]; !ok {
			return nil, fmt.Errorf("%w: lead %s missing from its orbit", ErrSectorMismatch, bf.Lead)
		}
		for dec := range bf.Decs {
			if dec.Uint64()>>uint(n) != 0 {
				return nil, fmt.Errorf("%w: configuration %s outside %d sites", ErrSectorMismatch, dec, n)
			}
			if sector.Restricted && dec.OnesCount() != sector.Nup.Int() {
				return nil, fmt.Errorf("%w: configuration %s has wrong filling", ErrSectorMismatch, dec)
			}
		}
		bf.Norm = norm(bf.Decs)
	}
	return newSet(sector, funcs, discarded, stats), nil
}

// Sector returns the symmetry sector the set was built for.
func (s *BlochFuncSet) Sector() Sector { return s.sector }

// Len returns the number of Bloch functions.
func (s *BlochFuncSet) Len() int { return len(s.funcs) }

// At returns the i-th Bloch function in lead order.
func (s *BlochFuncSet) At(i int) *BlochFunc { return s.funcs[i] }

// All iterates over the functions in lead order.
func (s *BlochFuncSet) All() iter.Seq2[int, *BlochFunc] {
	return func(yield func(int, *BlochFunc) bool) {
		for i, bf := range s.funcs {
			if !yield(i, bf) {
				return
			}
		}
	}
}

// Find returns the index of the function whose Lead is lead.
func (s *BlochFuncSet) Find(lead basis.BinaryBasis) (int, bool) {
	return slices.BinarySearchFunc(s.funcs, lead, func(bf *BlochFunc, t basis.BinaryBasis) int {
		return cmp.Compare(bf.Lead.Uint64(), t.Uint64())
	})
}

// Stats returns the scan statistics.
func (s *BlochFuncSet) Stats() Stats { return s.stats }

// Discarded returns the configurations of every vanished orbit. The bitmap
// is shared; callers must not modify it.
func (s *BlochFuncSet) Discarded() *roaring64.Bitmap { return s.discarded }

// Members returns the configuration → function index table, building it on
// first use. The map is shared; callers must not modify it.
func (s *BlochFuncSet) Members() map[basis.BinaryBasis]int32 {
	s.membersOnce.Do(func() {
		s.members = MemberTable(s)
	})
	return s.members
}

// FindLeadingState returns the function that owns dec together with its
// index and the phase of dec within it.
func (s *BlochFuncSet) FindLeadingState(dec basis.BinaryBasis) (*BlochFunc, int, complex128, bool) {
	idx, phase, ok := FindLeadingState(dec, s, s.Members())
	if !ok {
		return nil, 0, 0, false
	}
	return s.funcs[idx], idx, phase, true
}
