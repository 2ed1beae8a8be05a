package combin

import (
	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/lattice"
)

// Permute steps the ascending position list v to its predecessor combination
// and returns it. v is modified in place.
//
// If the lowest position can move down it is decremented. Otherwise the first
// position with a gap below it is decremented and every lower position is
// packed directly beneath it. When no gap exists (v is {0, ..., c-1}) the
// sequence wraps to {lmax-c+1, ..., lmax}.
func Permute(v []int, lmax int) []int {
	if len(v) == 0 {
		return v
	}
	if v[0] > 0 {
		v[0]--
		return v
	}

	i := 1
	for ; i < len(v); i++ {
		if v[i]-v[i-1] > 1 {
			v[i]--
			break
		}
	}
	j := i
	if i == len(v) {
		v[i-1] = lmax
		j--
	}
	for ; j > 0; j-- {
		v[j-1] = v[j] - 1
	}
	return v
}

// Compose returns the configuration with exactly the listed sites set.
func Compose(v []int) basis.BinaryBasis {
	var acc basis.BinaryBasis
	for _, p := range v {
		acc = acc.Add(basis.Pow2(p))
	}
	return acc
}

// SzBasis lists every configuration of n sites with nup up spins, starting
// from {0, ..., nup-1} and applying Permute C(n, nup) times. The result is
// strictly decreasing. For nup == 0 it is the single empty configuration.
func SzBasis(n, nup int) ([]basis.BinaryBasis, error) {
	if n <= 0 {
		return nil, &lattice.ErrInvalidDim{Value: n}
	}
	if n > lattice.MaxSites {
		return nil, &lattice.ErrTooManySites{Sites: n, Max: lattice.MaxSites}
	}
	if nup < 0 || nup > n {
		return nil, &lattice.ErrFillingOutOfRange{Value: nup, Sites: n}
	}
	size, err := ChooseInt(n, nup)
	if err != nil {
		return nil, err
	}

	if nup == 0 {
		return []basis.BinaryBasis{basis.New(0)}, nil
	}

	v := make([]int, nup)
	for i := range v {
		v[i] = i
	}
	out := make([]basis.BinaryBasis, 0, size)
	for range size {
		v = Permute(v, n-1)
		out = append(out, Compose(v))
	}
	return out, nil
}
