package operator

import (
	"context"
	"fmt"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/bloch"
	"github.com/hupe1980/trispin/lattice"
	"github.com/hupe1980/trispin/sites"
	"github.com/hupe1980/trispin/sparse"
)

// refOp applies an operator to one configuration in the plain configuration
// basis.
type refOp func(x basis.BinaryBasis, emit func(y basis.BinaryBasis, h complex128))

// refFrobenius returns the squared Frobenius norm of op over all 2^n
// configurations.
func refFrobenius(n int, op refOp) float64 {
	var total float64
	for v := range uint64(1) << n {
		row := map[basis.BinaryBasis]complex128{}
		op(basis.New(v), func(y basis.BinaryBasis, h complex128) { row[y] += h })
		for _, h := range row {
			total += real(h)*real(h) + imag(h)*imag(h)
		}
	}
	return total
}

func frobenius(m *sparse.CoordMatrix) float64 {
	var total float64
	for _, v := range m.Data {
		total += real(v)*real(v) + imag(v)*imag(v)
	}
	return total
}

type assembleFunc func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error)

func shape3x3(t *testing.T) (lattice.Shape, []basis.BinaryBasis, []basis.BinaryBasis) {
	t.Helper()
	s := lattice.MustShape(3, 3)
	s1, s2, err := sites.InteractingSites(s, lattice.Nearest)
	require.NoError(t, err)
	return s, s1, s2
}

// momentumSum assembles op in every momentum sector (and every filling when
// restricted), checks Hermiticity and returns the summed squared norms.
func momentumSum(t *testing.T, s lattice.Shape, restricted bool, op assembleFunc) float64 {
	t.Helper()
	ctx := context.Background()
	var total float64
	for kx := range s.Nx.Int() {
		for ky := range s.Ny.Int() {
			mkx, mky := lattice.MustMomentum(kx, s.Nx), lattice.MustMomentum(ky, s.Ny)
			var sets []*bloch.BlochFuncSet
			if restricted {
				for nup := 0; nup <= s.Sites(); nup++ {
					set, err := bloch.CollectSz(ctx, s, mkx, mky, nup)
					require.NoError(t, err)
					sets = append(sets, set)
				}
			} else {
				set, err := bloch.Collect(ctx, s, mkx, mky)
				require.NoError(t, err)
				sets = append(sets, set)
			}
			for _, set := range sets {
				m, err := op(set)
				require.NoError(t, err)
				require.Equal(t, uint32(set.Len()), m.NRows)
				require.Equal(t, uint32(set.Len()), m.NCols)
				require.True(t, m.IsHermitian(1e-10), "sector %s", set.Sector())
				total += frobenius(m)
			}
		}
	}
	return total
}

func TestTwoBodyOperatorsMatchConfigurationBasis(t *testing.T) {
	s, s1, s2 := shape3x3(t)
	n := s.Sites()
	g2 := bondPhases(s, s1, s2, nil)

	tests := []struct {
		name       string
		op         assembleFunc
		ref        refOp
		conserving bool
	}{
		{
			name: "SSZ",
			op:   func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) { return SSZ(set, s1, s2) },
			ref: func(x basis.BinaryBasis, emit func(basis.BinaryBasis, complex128)) {
				var h float64
				for k := range s1 {
					h += sz(x, s1[k]) * sz(x, s2[k])
				}
				emit(x, complex(h, 0))
			},
			conserving: true,
		},
		{
			name: "SSXY",
			op:   func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) { return SSXY(set, s1, s2) },
			ref: func(x basis.BinaryBasis, emit func(basis.BinaryBasis, complex128)) {
				for k := range s1 {
					if x.Has(s1[k]) != x.Has(s2[k]) {
						emit(basis.New(x.Uint64()^s1[k].Uint64()^s2[k].Uint64()), 0.5)
					}
				}
			},
			conserving: true,
		},
		{
			name: "SSPPMM",
			op:   func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) { return SSPPMM(set, s1, s2, nil) },
			ref: func(x basis.BinaryBasis, emit func(basis.BinaryBasis, complex128)) {
				for k := range s1 {
					up1, up2 := x.Has(s1[k]), x.Has(s2[k])
					y := basis.New(x.Uint64() ^ s1[k].Uint64() ^ s2[k].Uint64())
					switch {
					case !up1 && !up2:
						emit(y, g2[k])
					case up1 && up2:
						emit(y, cmplx.Conj(g2[k]))
					}
				}
			},
		},
		{
			name: "SSPMZ",
			op:   func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) { return SSPMZ(set, s1, s2, nil) },
			ref: func(x basis.BinaryBasis, emit func(basis.BinaryBasis, complex128)) {
				for k := range s1 {
					for _, p := range [][2]basis.BinaryBasis{{s1[k], s2[k]}, {s2[k], s1[k]}} {
						y := basis.New(x.Uint64() ^ p[0].Uint64())
						h := complex(sz(x, p[1]), 0)
						if x.Has(p[0]) {
							emit(y, g2[k]*h)
						} else {
							emit(y, cmplx.Conj(g2[k])*h)
						}
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := refFrobenius(n, tt.ref)
			require.Greater(t, want, 0.0)
			assert.InDelta(t, want, momentumSum(t, s, false, tt.op), 1e-8)
			if tt.conserving {
				assert.InDelta(t, want, momentumSum(t, s, true, tt.op), 1e-8)
			}
		})
	}
}

func TestBondOperatorsHermitianOnNarrowTori(t *testing.T) {
	for _, sh := range [][2]int{{2, 3}, {3, 2}, {2, 4}, {2, 2}} {
		s := lattice.MustShape(sh[0], sh[1])
		for _, r := range []lattice.Range{lattice.Nearest, lattice.Second, lattice.Third} {
			s1, s2, gamma, err := sites.InteractingBonds(s, r)
			require.NoError(t, err)

			ops := map[string]assembleFunc{
				"SSXY":   func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) { return SSXY(set, s1, s2) },
				"SSPPMM": func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) { return SSPPMM(set, s1, s2, gamma) },
				"SSPMZ":  func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) { return SSPMZ(set, s1, s2, gamma) },
			}
			for name, op := range ops {
				t.Run(fmt.Sprintf("%s/r%d/%s", s, r, name), func(t *testing.T) {
					momentumSum(t, s, false, op)
				})
			}
		}
	}
}

func TestChiralityMatchesConfigurationBasis(t *testing.T) {
	s := lattice.MustShape(3, 3)
	t1, t2, t3 := sites.TriangularVertSites(s)

	ref := func(x basis.BinaryBasis, emit func(basis.BinaryBasis, complex128)) {
		for k := range t1 {
			for _, c := range [][3]basis.BinaryBasis{{t1[k], t2[k], t3[k]}, {t2[k], t3[k], t1[k]}, {t3[k], t1[k], t2[k]}} {
				h := complex(0, 0.5*sz(x, c[0]))
				upj, upk := x.Has(c[1]), x.Has(c[2])
				y := basis.New(x.Uint64() ^ c[1].Uint64() ^ c[2].Uint64())
				switch {
				case !upj && upk:
					emit(y, h)
				case upj && !upk:
					emit(y, -h)
				}
			}
		}
	}
	op := func(set *bloch.BlochFuncSet) (*sparse.CoordMatrix, error) { return SSSChi(set, t1, t2, t3) }

	want := refFrobenius(s.Sites(), ref)
	require.Greater(t, want, 0.0)
	assert.InDelta(t, want, momentumSum(t, s, false, op), 1e-8)
	assert.InDelta(t, want, momentumSum(t, s, true, op), 1e-8)
}

func TestSSZFerromagnet(t *testing.T) {
	s, s1, s2 := shape3x3(t)
	set, err := bloch.CollectSz(context.Background(), s,
		lattice.MustMomentum(0, s.Nx), lattice.MustMomentum(0, s.Ny), s.Sites())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	m, err := SSZ(set, s1, s2)
	require.NoError(t, err)
	require.Equal(t, 1, m.Nnz())
	assert.InDelta(t, float64(len(s1))/4, real(m.At(0, 0)), 1e-12)

	m, err = SSXY(set, s1, s2)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Nnz())
}

func TestSzBreakingOperatorsRejectRestrictedSets(t *testing.T) {
	s, s1, s2 := shape3x3(t)
	set, err := bloch.CollectSz(context.Background(), s,
		lattice.MustMomentum(0, s.Nx), lattice.MustMomentum(0, s.Ny), 4)
	require.NoError(t, err)

	_, err = SSPPMM(set, s1, s2, nil)
	assert.ErrorIs(t, err, ErrSzBroken)
	_, err = SSPMZ(set, s1, s2, nil)
	assert.ErrorIs(t, err, ErrSzBroken)
}

func TestSiteMismatch(t *testing.T) {
	s, s1, s2 := shape3x3(t)
	set, err := bloch.Collect(context.Background(), s,
		lattice.MustMomentum(0, s.Nx), lattice.MustMomentum(0, s.Ny))
	require.NoError(t, err)

	_, err = SSZ(set, s1, s2[:3])
	assert.ErrorIs(t, err, ErrSiteMismatch)
	_, err = SSSChi(set, s1, s2, s1[:1])
	assert.ErrorIs(t, err, ErrSiteMismatch)
	_, err = SSPPMM(set, s1, s2, make([]complex128, 2))
	assert.ErrorIs(t, err, ErrSiteMismatch)
}

func TestEmptySetGivesEmptyMatrix(t *testing.T) {
	s := lattice.MustShape(3, 1)
	// nup = 0 at kx = 1 vanishes
	set, err := bloch.CollectSz(context.Background(), s,
		lattice.MustMomentum(1, s.Nx), lattice.MustMomentum(0, s.Ny), 0)
	require.NoError(t, err)
	require.Equal(t, 0, set.Len())

	s1, s2, err := sites.InteractingSites(s, lattice.Nearest)
	require.NoError(t, err)
	m, err := SSXY(set, s1, s2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), m.NRows)
	assert.Equal(t, 0, m.Nnz())
}
