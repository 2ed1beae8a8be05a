package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigs(t *testing.T) {
	rng := NewRNG(4711)

	decs := rng.Configs(12, 64)
	assert.Len(t, decs, 64)
	for _, d := range decs {
		assert.Less(t, d.Uint64(), uint64(1)<<12)
	}
}

func TestConfigsWithFilling(t *testing.T) {
	rng := NewRNG(4711)

	for _, d := range rng.ConfigsWithFilling(36, 18, 100) {
		assert.Equal(t, 18, d.OnesCount())
		assert.Less(t, d.Uint64(), uint64(1)<<36)
	}
	for _, d := range rng.ConfigsWithFilling(5, 0, 3) {
		assert.Equal(t, uint64(0), d.Uint64())
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.Configs(20, 10)
	rng.Reset()
	b := rng.Configs(20, 10)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(42), rng.Seed())
}

func TestComplexVector(t *testing.T) {
	rng := NewRNG(7)
	for _, c := range rng.ComplexVector(50) {
		assert.GreaterOrEqual(t, real(c), -1.0)
		assert.Less(t, real(c), 1.0)
		assert.GreaterOrEqual(t, imag(c), -1.0)
		assert.Less(t, imag(c), 1.0)
	}
}

func TestAssertComplexInDelta(t *testing.T) {
	assert.True(t, AssertComplexInDelta(t, 1+1i, 1+1i+1e-13, 1e-12))

	mock := new(testing.T)
	assert.False(t, AssertComplexInDelta(mock, 1, 1i, 1e-12))
	assert.True(t, mock.Failed())
}
