// Package basis implements the binary spin-configuration type and the
// translation group acting on it.
//
// A BinaryBasis is a bitmask over lattice sites: bit i is set when site i
// carries an up spin. Row y of an nx × ny lattice occupies bits
// [nx*y, nx*(y+1)). The arithmetic methods exist for the bit-window
// formulas of the translation operators; they are plain unsigned integer
// operations and do not check for overflow.
package basis

import (
	"fmt"
	"math/bits"

	"github.com/hupe1980/trispin/lattice"
)

// MaxBits is the number of entries in the power table (2^0 .. 2^62).
const MaxBits = 63

// BinaryBasis is a spin configuration encoded as a fixed-width bitmask.
// It is ordered by its integer value.
type BinaryBasis struct {
	v uint64
}

// New wraps a raw bitmask.
func New(v uint64) BinaryBasis { return BinaryBasis{v: v} }

// Pow2 returns 2^k for k in [0, MaxBits). It panics for k out of range.
func Pow2(k int) BinaryBasis { return pow2[k] }

// Site returns the single-bit mask of site i.
func Site(i int) BinaryBasis { return pow2[i] }

// Uint64 returns the raw bitmask.
func (b BinaryBasis) Uint64() uint64 { return b.v }

func (b BinaryBasis) Add(o BinaryBasis) BinaryBasis { return BinaryBasis{b.v + o.v} }
func (b BinaryBasis) Sub(o BinaryBasis) BinaryBasis { return BinaryBasis{b.v - o.v} }
func (b BinaryBasis) Mul(o BinaryBasis) BinaryBasis { return BinaryBasis{b.v * o.v} }
func (b BinaryBasis) Div(o BinaryBasis) BinaryBasis { return BinaryBasis{b.v / o.v} }
func (b BinaryBasis) Rem(o BinaryBasis) BinaryBasis { return BinaryBasis{b.v % o.v} }
func (b BinaryBasis) And(o BinaryBasis) BinaryBasis { return BinaryBasis{b.v & o.v} }
func (b BinaryBasis) Or(o BinaryBasis) BinaryBasis  { return BinaryBasis{b.v | o.v} }

// Less reports whether b orders before o.
func (b BinaryBasis) Less(o BinaryBasis) bool { return b.v < o.v }

// Compare returns -1, 0 or +1 like cmp.Compare.
func (b BinaryBasis) Compare(o BinaryBasis) int {
	switch {
	case b.v < o.v:
		return -1
	case b.v > o.v:
		return 1
	default:
		return 0
	}
}

// OnesCount returns the number of up spins.
func (b BinaryBasis) OnesCount() int { return bits.OnesCount64(b.v) }

// Has reports whether every bit of the mask s is set in b.
func (b BinaryBasis) Has(s BinaryBasis) bool { return b.v|s.v == b.v }

// SiteIndex returns the index of the lowest set bit, or -1 for the empty mask.
// For single-site masks this is the site index.
func (b BinaryBasis) SiteIndex() int {
	if b.v == 0 {
		return -1
	}
	return bits.TrailingZeros64(b.v)
}

func (b BinaryBasis) String() string { return fmt.Sprintf("%d", b.v) }

// TranslateX rotates every row of nx bits one position towards the higher
// bit, wrapping the top bit of the row to its bottom. Rows are rotated
// independently.
func TranslateX(dec BinaryBasis, nx, ny lattice.Dim) BinaryBasis {
	w := nx.Int()
	width := pow2[w]
	top := pow2[w-1]
	two := BinaryBasis{2}

	var acc BinaryBasis
	for y := range ny.Int() {
		x := y * w
		row := dec.Rem(pow2[x+w]).Div(pow2[x])
		rotated := row.Mul(two).Rem(width).Add(row.Div(top))
		acc = acc.Add(pow2[x].Mul(rotated))
	}
	return acc
}

// TranslateY moves the bottom row (least significant nx bits) to the top and
// shifts every other row down by one.
func TranslateY(dec BinaryBasis, nx, ny lattice.Dim) BinaryBasis {
	xdim := pow2[nx.Int()]
	predTotdim := pow2[nx.Int()*(ny.Int()-1)]
	tail := dec.Rem(xdim)
	return dec.Div(xdim).Add(tail.Mul(predTotdim))
}

// ExchangeSpinFlips reports whether sites s1, s2 are up-down or down-up in dec.
func ExchangeSpinFlips(dec, s1, s2 BinaryBasis) (updown, downup bool) {
	up1, up2 := dec.Has(s1), dec.Has(s2)
	return up1 && !up2, !up1 && up2
}

// RepeatedSpins reports whether sites s1, s2 are both up or both down in dec.
func RepeatedSpins(dec, s1, s2 BinaryBasis) (upup, downdown bool) {
	up1, up2 := dec.Has(s1), dec.Has(s2)
	return up1 && up2, !up1 && !up2
}
