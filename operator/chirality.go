package operator

import (
	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/bloch"
	"github.com/hupe1980/trispin/sparse"
)

// SSSChi assembles the scalar chirality Σ S_i · (S_j × S_k) over the given
// triangles, expanded as
//
//	(i/2) Σ_cyc S^z_i (S^+_j S^-_k − S^-_j S^+_k)
//
// Triangles with coinciding corners are skipped.
func SSSChi(set *bloch.BlochFuncSet, s1, s2, s3 []basis.BinaryBasis) (*sparse.CoordMatrix, error) {
	if err := checkSites(s1, s2, s3); err != nil {
		return nil, err
	}
	a := newAssembler(set)
	a.columns(func(lead basis.BinaryBasis) {
		for t := range s1 {
			i, j, k := s1[t], s2[t], s3[t]
			if i == j || j == k || k == i {
				continue
			}
			for _, c := range [3][3]basis.BinaryBasis{{i, j, k}, {j, k, i}, {k, i, j}} {
				h := complex(0, 0.5*sz(lead, c[0]))
				updown, downup := basis.ExchangeSpinFlips(lead, c[1], c[2])
				switch {
				case downup:
					a.emit(lead.Add(c[1]).Sub(c[2]), h)
				case updown:
					a.emit(lead.Sub(c[1]).Add(c[2]), -h)
				}
			}
		}
	})
	return a.build(), nil
}
