package operator

import (
	"math/cmplx"

	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/bloch"
	"github.com/hupe1980/trispin/lattice"
	"github.com/hupe1980/trispin/sites"
	"github.com/hupe1980/trispin/sparse"
)

// SSZ assembles Σ S^z_i S^z_j over the site pairs.
func SSZ(set *bloch.BlochFuncSet, s1, s2 []basis.BinaryBasis) (*sparse.CoordMatrix, error) {
	if err := checkSites(s1, s2); err != nil {
		return nil, err
	}
	a := newAssembler(set)
	a.columns(func(lead basis.BinaryBasis) {
		var h float64
		for k := range s1 {
			h += sz(lead, s1[k]) * sz(lead, s2[k])
		}
		a.emit(lead, complex(h, 0))
	})
	return a.build(), nil
}

// SSXY assembles Σ (S^+_i S^-_j + S^-_i S^+_j) / 2 over the site pairs.
func SSXY(set *bloch.BlochFuncSet, s1, s2 []basis.BinaryBasis) (*sparse.CoordMatrix, error) {
	if err := checkSites(s1, s2); err != nil {
		return nil, err
	}
	a := newAssembler(set)
	a.columns(func(lead basis.BinaryBasis) {
		for k := range s1 {
			updown, downup := basis.ExchangeSpinFlips(lead, s1[k], s2[k])
			switch {
			case updown:
				a.emit(lead.Sub(s1[k]).Add(s2[k]), 0.5)
			case downup:
				a.emit(lead.Add(s1[k]).Sub(s2[k]), 0.5)
			}
		}
	})
	return a.build(), nil
}

// SSPPMM assembles Σ γ²_ij S^+_i S^+_j + γ*²_ij S^-_i S^-_j, where γ_ij is
// the phase of bond k = (i, j). gamma holds one phase per bond, as returned by
// sites.InteractingBonds; if it is nil the phases come from sites.Gamma. It
// requires an unrestricted basis.
func SSPPMM(set *bloch.BlochFuncSet, s1, s2 []basis.BinaryBasis, gamma []complex128) (*sparse.CoordMatrix, error) {
	if err := checkBonds(s1, s2, gamma); err != nil {
		return nil, err
	}
	if err := checkSzConserving(set, "SSPPMM"); err != nil {
		return nil, err
	}
	shape := set.Sector().Shape
	g2 := bondPhases(shape, s1, s2, gamma)

	a := newAssembler(set)
	a.columns(func(lead basis.BinaryBasis) {
		for k := range s1 {
			upup, downdown := basis.RepeatedSpins(lead, s1[k], s2[k])
			switch {
			case downdown:
				a.emit(lead.Add(s1[k]).Add(s2[k]), g2[k])
			case upup:
				a.emit(lead.Sub(s1[k]).Sub(s2[k]), cmplx.Conj(g2[k]))
			}
		}
	})
	return a.build(), nil
}

// SSPMZ assembles Σ γ*²_ij (S^+_i S^z_j + S^z_i S^+_j) + h.c. with the bond
// phases handled as in SSPPMM. It requires an unrestricted basis.
func SSPMZ(set *bloch.BlochFuncSet, s1, s2 []basis.BinaryBasis, gamma []complex128) (*sparse.CoordMatrix, error) {
	if err := checkBonds(s1, s2, gamma); err != nil {
		return nil, err
	}
	if err := checkSzConserving(set, "SSPMZ"); err != nil {
		return nil, err
	}
	shape := set.Sector().Shape
	g2 := bondPhases(shape, s1, s2, gamma)

	a := newAssembler(set)
	a.columns(func(lead basis.BinaryBasis) {
		for k := range s1 {
			pairs := [2][2]basis.BinaryBasis{{s1[k], s2[k]}, {s2[k], s1[k]}}
			for _, p := range pairs {
				flip, z := p[0], sz(lead, p[1])
				if lead.Has(flip) {
					a.emit(lead.Sub(flip), g2[k]*complex(z, 0))
				} else {
					a.emit(lead.Add(flip), cmplx.Conj(g2[k])*complex(z, 0))
				}
			}
		}
	})
	return a.build(), nil
}

// bondPhases returns γ² for every bond. Squaring makes the phase independent
// of the bond's orientation.
func bondPhases(shape lattice.Shape, s1, s2 []basis.BinaryBasis, gamma []complex128) []complex128 {
	out := make([]complex128, len(s1))
	for k := range s1 {
		var g complex128
		if gamma != nil {
			g = gamma[k]
		} else {
			g = sites.Gamma(shape, s1[k], s2[k])
		}
		out[k] = g * g
	}
	return out
}
