// Package sites enumerates the interacting site masks used to assemble
// two- and three-body operators on the triangular torus.
//
// Every generator returns parallel slices of single-bit masks: the k-th
// entries of the slices belong to the same bond or triangle.
package sites

import (
	"math/cmplx"

	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/lattice"
)

// InteractingSites returns the bonds of neighbor shell r. Each pair of sites
// appears once and never pairs a site with itself.
func InteractingSites(s lattice.Shape, r lattice.Range) (s1, s2 []basis.BinaryBasis, err error) {
	s1, s2, _, err = InteractingBonds(s, r)
	return s1, s2, err
}

// InteractingBonds is InteractingSites plus the phase exp(iθ) of every bond,
// where θ is the angle of the shell vector that generated it. Unlike Gamma
// this stays well defined on tori with a side of length 2, where the minimum
// image of a displacement is ambiguous.
func InteractingBonds(s lattice.Shape, r lattice.Range) (s1, s2 []basis.BinaryBasis, gamma []complex128, err error) {
	if err := s.Validate(); err != nil {
		return nil, nil, nil, err
	}
	if _, err := lattice.NewRange(int(r)); err != nil {
		return nil, nil, nil, err
	}

	bonds := lattice.Bonds(s, r)
	s1 = make([]basis.BinaryBasis, 0, len(bonds))
	s2 = make([]basis.BinaryBasis, 0, len(bonds))
	gamma = make([]complex128, 0, len(bonds))
	for _, b := range bonds {
		s1 = append(s1, basis.Site(b.From.Index()))
		s2 = append(s2, basis.Site(b.To.Index()))
		gamma = append(gamma, cmplx.Rect(1, b.Angle()))
	}
	return s1, s2, gamma, nil
}

// TriangularVertSites returns the corners of one upright and one inverted
// triangle per site, each listed clockwise starting at the site itself.
// Triangles come in row-major site order, upright first. On tori with a
// dimension below 2 some corners coincide.
func TriangularVertSites(s lattice.Shape) (s1, s2, s3 []basis.BinaryBasis) {
	n := s.Sites()
	s1 = make([]basis.BinaryBasis, 0, 2*n)
	s2 = make([]basis.BinaryBasis, 0, 2*n)
	s3 = make([]basis.BinaryBasis, 0, 2*n)

	v := s.Origin()
	for range n {
		// upright
		s1 = append(s1, basis.Site(v.Index()))
		s2 = append(s2, basis.Site(v.YHop(1).Index()))
		s3 = append(s3, basis.Site(v.XHop(1).Index()))

		// inverted
		s1 = append(s1, basis.Site(v.Index()))
		s2 = append(s2, basis.Site(v.XHop(1).Index()))
		s3 = append(s3, basis.Site(v.Hop(1, -1).Index()))

		v = v.Next()
	}
	return s1, s2, s3
}

// AllSites pairs every site with the site l positions further in row-major
// index order, wrapping around the torus: the x offset is l mod nx and the
// y offset is l div nx.
func AllSites(s lattice.Shape, l lattice.Stride) (s1, s2 []basis.BinaryBasis) {
	nx := s.Nx.Int()
	xs, ys := l.Int()%nx, l.Int()/nx

	n := s.Sites()
	s1 = make([]basis.BinaryBasis, 0, n)
	s2 = make([]basis.BinaryBasis, 0, n)
	v := s.Origin()
	for range n {
		w := v.Hop(xs, ys)
		if w.Index() != v.Index() {
			s1 = append(s1, basis.Site(v.Index()))
			s2 = append(s2, basis.Site(w.Index()))
		}
		v = v.Next()
	}
	return s1, s2
}

// Gamma returns exp(iθ) where θ is the real-space angle of the minimum-image
// bond from site s1 to site s2.
func Gamma(s lattice.Shape, s1, s2 basis.BinaryBasis) complex128 {
	a := s.SiteAt(s1.SiteIndex())
	b := s.SiteAt(s2.SiteIndex())
	return cmplx.Rect(1, a.AngleWith(b))
}
