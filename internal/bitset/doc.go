// Package bitset provides a fixed-size, lock-free segmented bitset used as the
// visited sieve of the orbit scan.
//
// Architecture:
//   - Segmented design: 8KB segments (1024 uint64 words = 65536 bits each)
//   - Lock-free: every word is an atomic.Uint64, claims use CAS
//   - Eager allocation: all segments exist after New, so Bytes is exact
//
// A scan index is claimed with TestAndSet; exactly one caller observes false
// for any given index.
package bitset
