package lattice

import "github.com/bits-and-blooms/bitset"

// Bond is an oriented pair of distinct sites with To = From + Vec, where Vec
// is the forward shell vector that generated it.
type Bond struct {
	From, To Site
	Vec      [2]int
}

// Angle returns the real-space angle of Vec, in radians.
func (b Bond) Angle() float64 { return angle(b.Vec[0], b.Vec[1]) }

// Bonds returns every bond of shell r on the torus, grouped by shell vector
// and in row-major site order within a group. A pair of sites is emitted once
// even when several shell vectors connect it on a narrow torus, and pairs
// that wrap onto a single site are dropped.
//
// Translating a duplicate pair yields another duplicate, so each group is
// kept or dropped as a whole and the result is translation invariant.
func Bonds(s Shape, r Range) []Bond {
	n := s.Sites()
	seen := bitset.New(uint(n * n))
	bonds := make([]Bond, 0, 3*n)

	for _, d := range r.Vectors() {
		for i := range n {
			v := s.SiteAt(i)
			w := v.Hop(d[0], d[1])
			a, b := v.Index(), w.Index()
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			key := uint(a*n + b)
			if seen.Test(key) {
				continue
			}
			seen.Set(key)
			bonds = append(bonds, Bond{From: v, To: w, Vec: d})
		}
	}
	return bonds
}
