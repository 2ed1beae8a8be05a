package testutil

import (
	"fmt"
	"math/cmplx"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/trispin/basis"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Configs returns count random configurations on n sites.
func (r *RNG) Configs(n, count int) []basis.BinaryBasis {
	r.mu.Lock()
	defer r.mu.Unlock()

	mask := uint64(1)<<n - 1
	out := make([]basis.BinaryBasis, count)
	for i := range out {
		out[i] = basis.New(r.rand.Uint64() & mask)
	}
	return out
}

// ConfigsWithFilling returns count random configurations on n sites with
// exactly nup up spins.
func (r *RNG) ConfigsWithFilling(n, nup, count int) []basis.BinaryBasis {
	r.mu.Lock()
	defer r.mu.Unlock()

	sites := make([]int, n)
	for i := range sites {
		sites[i] = i
	}
	out := make([]basis.BinaryBasis, count)
	for i := range out {
		r.rand.Shuffle(n, func(a, b int) { sites[a], sites[b] = sites[b], sites[a] })
		var v uint64
		for _, s := range sites[:nup] {
			v |= 1 << s
		}
		out[i] = basis.New(v)
	}
	return out
}

// ComplexVector returns n amplitudes with real and imaginary parts in [-1, 1).
func (r *RNG) ComplexVector(n int) []complex128 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(r.rand.Float64()*2-1, r.rand.Float64()*2-1)
	}
	return out
}

// AssertComplexInDelta asserts |want-got| <= delta.
func AssertComplexInDelta(t testing.TB, want, got complex128, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if d := cmplx.Abs(want - got); d > delta {
		return assert.Fail(t, fmt.Sprintf("complex values differ: want %v, got %v (|diff| = %g > %g)", want, got, d, delta), msgAndArgs...)
	}
	return true
}

// AssertDenseInDelta compares two dense matrices element-wise.
func AssertDenseInDelta(t testing.TB, want, got [][]complex128, delta float64) {
	t.Helper()
	require.Len(t, got, len(want), "row count")
	for i := range want {
		require.Len(t, got[i], len(want[i]), "column count of row %d", i)
		for j := range want[i] {
			AssertComplexInDelta(t, want[i][j], got[i][j], delta, "element (%d,%d)", i, j)
		}
	}
}
