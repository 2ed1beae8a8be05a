// Package testutil provides testing utilities for trispin.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random spin configurations and helpers for comparing
// complex amplitudes and sparse matrices.
//
// # Random Configurations
//
//	rng := testutil.NewRNG(seed)
//	decs := rng.Configs(12, 100)             // any filling
//	fixed := rng.ConfigsWithFilling(12, 6, 100)
//
// # Comparisons
//
//	testutil.AssertComplexInDelta(t, want, got, 1e-12)
//	testutil.AssertDenseInDelta(t, want, m.Dense(), 1e-12)
package testutil
