package bitset

import (
	"math/bits"
	"sync/atomic"
)

const (
	// segmentBits determines the size of each segment.
	// 16 bits = 65536 bits per segment.
	segmentBits = 16
	segmentSize = 1 << segmentBits
	segmentMask = segmentSize - 1

	wordsPerSegment = segmentSize / 64
)

type segment [wordsPerSegment]atomic.Uint64

// BitSet is a thread-safe, lock-free bitset of a fixed number of bits.
type BitSet struct {
	segments []*segment
	size     uint64
}

// New creates a BitSet holding size bits, all clear.
func New(size uint64) *BitSet {
	n := (size + segmentSize - 1) >> segmentBits
	b := &BitSet{
		segments: make([]*segment, n),
		size:     size,
	}
	for i := range b.segments {
		b.segments[i] = new(segment)
	}
	return b
}

// Bytes returns the memory needed by a BitSet of size bits.
func Bytes(size uint64) uint64 {
	n := (size + segmentSize - 1) >> segmentBits
	return n * wordsPerSegment * 8
}

func (b *BitSet) word(i uint64) (*atomic.Uint64, uint64) {
	seg := b.segments[i>>segmentBits]
	offset := i & segmentMask
	return &seg[offset/64], uint64(1) << (offset % 64)
}

// Set sets the bit at index i. Out-of-range indices are ignored.
func (b *BitSet) Set(i uint64) {
	if i >= b.size {
		return
	}
	w, mask := b.word(i)
	w.Or(mask)
}

// TestAndSet sets the bit at index i and reports whether it was ALREADY set.
// Out-of-range indices report true so they are never claimed.
func (b *BitSet) TestAndSet(i uint64) bool {
	if i >= b.size {
		return true
	}
	w, mask := b.word(i)

	// Optimistic check
	if w.Load()&mask != 0 {
		return true
	}
	for {
		old := w.Load()
		if old&mask != 0 {
			return true
		}
		if w.CompareAndSwap(old, old|mask) {
			return false
		}
	}
}

// Unset clears the bit at index i.
func (b *BitSet) Unset(i uint64) {
	if i >= b.size {
		return
	}
	w, mask := b.word(i)
	w.And(^mask)
}

// Test reports whether the bit at index i is set.
func (b *BitSet) Test(i uint64) bool {
	if i >= b.size {
		return false
	}
	w, mask := b.word(i)
	return w.Load()&mask != 0
}

// NextClear returns the index of the first clear bit at or after i, or -1 if
// every remaining bit is set.
func (b *BitSet) NextClear(i uint64) int64 {
	for i < b.size {
		w, _ := b.word(i)
		bit := i % 64
		free := ^w.Load() >> bit
		if free != 0 {
			j := i + uint64(bits.TrailingZeros64(free))
			if j >= b.size {
				return -1
			}
			return int64(j)
		}
		i += 64 - bit
	}
	return -1
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	count := 0
	for _, seg := range b.segments {
		for i := range seg {
			if v := seg[i].Load(); v != 0 {
				count += bits.OnesCount64(v)
			}
		}
	}
	return count
}

// ClearAll clears all bits.
func (b *BitSet) ClearAll() {
	for _, seg := range b.segments {
		for i := range seg {
			seg[i].Store(0)
		}
	}
}

// Len returns the size of the bitset in bits.
func (b *BitSet) Len() uint64 {
	return b.size
}
