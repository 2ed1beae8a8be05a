// Package combin enumerates the fixed-magnetization subspace: all
// configurations of n sites with exactly nup up spins.
//
// SzBasis materializes the subspace in the order produced by repeated
// application of Permute, which is strictly decreasing in value. Rank and
// Unrank map between that order and configurations without materializing it.
package combin

import (
	"errors"
	"math"
	"math/big"
)

// ErrTooLarge is returned when a binomial coefficient does not fit the
// integer type needed for allocation sizing.
var ErrTooLarge = errors.New("binomial coefficient too large")

// factorial computes n! by iterative accumulation.
func factorial(n int) *big.Int {
	acc := big.NewInt(1)
	for i := 2; i <= n; i++ {
		acc.Mul(acc, big.NewInt(int64(i)))
	}
	return acc
}

// Choose returns the exact binomial coefficient C(n, c). It returns zero
// when c is outside [0, n].
func Choose(n, c int) *big.Int {
	if n < 0 || c < 0 || c > n {
		return new(big.Int)
	}
	den := factorial(c)
	den.Mul(den, factorial(n-c))
	num := factorial(n)
	return num.Quo(num, den)
}

// ChooseInt returns C(n, c) as an int, for sizing allocations.
func ChooseInt(n, c int) (int, error) {
	v := Choose(n, c)
	if !v.IsInt64() || v.Int64() > math.MaxInt {
		return 0, ErrTooLarge
	}
	return int(v.Int64()), nil
}
