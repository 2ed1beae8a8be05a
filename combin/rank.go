package combin

import (
	"math/bits"

	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/lattice"
)

// pascal[n][k] holds C(n, k) for n <= MaxSites. The largest entry,
// C(62, 31), fits comfortably in 63 bits.
var pascal = buildPascal()

func buildPascal() *[lattice.MaxSites + 1][lattice.MaxSites + 1]uint64 {
	var t [lattice.MaxSites + 1][lattice.MaxSites + 1]uint64
	for n := 0; n <= lattice.MaxSites; n++ {
		t[n][0] = 1
		for k := 1; k <= n; k++ {
			t[n][k] = t[n-1][k-1] + t[n-1][k]
		}
	}
	return &t
}

func binom(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	return pascal[n][k]
}

// colex returns the colexicographic rank of the set bits of dec.
func colex(dec uint64) uint64 {
	var r uint64
	j := 1
	for dec != 0 {
		p := bits.TrailingZeros64(dec)
		r += binom(p, j)
		dec &= dec - 1
		j++
	}
	return r
}

// Rank returns the position of dec in SzBasis(n, popcount(dec)). dec must
// have no bits at or above n.
func Rank(dec basis.BinaryBasis, n int) int {
	v := dec.Uint64()
	nup := bits.OnesCount64(v)
	return int(binom(n, nup) - 1 - colex(v))
}

// Unrank returns SzBasis(n, nup)[i]. i must be in [0, C(n, nup)).
func Unrank(i, n, nup int) basis.BinaryBasis {
	r := binom(n, nup) - 1 - uint64(i)
	var v uint64
	p := n - 1
	for j := nup; j > 0; j-- {
		for binom(p, j) > r {
			p--
		}
		v |= 1 << uint(p)
		r -= binom(p, j)
		p--
	}
	return basis.New(v)
}
