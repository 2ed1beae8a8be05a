package trispin

import (
	"sync/atomic"
	"time"
)

// CacheTier names where a basis lookup was served from.
type CacheTier string

const (
	// CacheMemory is a hit in the in-process LRU.
	CacheMemory CacheTier = "memory"
	// CacheStore is a snapshot loaded from the blob store.
	CacheStore CacheTier = "store"
	// CacheMiss means the basis had to be built.
	CacheMiss CacheTier = "miss"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordBasis is called after each basis construction.
	// size is the number of Bloch functions kept, err is nil if successful.
	RecordBasis(size int, duration time.Duration, err error)

	// RecordOperator is called after each Hamiltonian term assembly.
	// nnz is the number of stored matrix entries.
	RecordOperator(term Term, nnz int, duration time.Duration, err error)

	// RecordCache is called for every basis lookup.
	RecordCache(tier CacheTier)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBasis(int, time.Duration, error)          {}
func (NoopMetricsCollector) RecordOperator(Term, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCache(CacheTier)                          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BasisCount       atomic.Int64
	BasisErrors      atomic.Int64
	BasisTotalNanos  atomic.Int64
	BasisFuncs       atomic.Int64
	OperatorCount    atomic.Int64
	OperatorErrors   atomic.Int64
	OperatorTotalNNZ atomic.Int64
	OperatorNanos    atomic.Int64
	CacheMemoryHits  atomic.Int64
	CacheStoreHits   atomic.Int64
	CacheMisses      atomic.Int64
}

// RecordBasis implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBasis(size int, duration time.Duration, err error) {
	b.BasisCount.Add(1)
	b.BasisTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BasisErrors.Add(1)
		return
	}
	b.BasisFuncs.Add(int64(size))
}

// RecordOperator implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOperator(_ Term, nnz int, duration time.Duration, err error) {
	b.OperatorCount.Add(1)
	b.OperatorNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OperatorErrors.Add(1)
		return
	}
	b.OperatorTotalNNZ.Add(int64(nnz))
}

// RecordCache implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCache(tier CacheTier) {
	switch tier {
	case CacheMemory:
		b.CacheMemoryHits.Add(1)
	case CacheStore:
		b.CacheStoreHits.Add(1)
	default:
		b.CacheMisses.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BasisCount:       b.BasisCount.Load(),
		BasisErrors:      b.BasisErrors.Load(),
		BasisAvgNanos:    avg(b.BasisTotalNanos.Load(), b.BasisCount.Load()),
		BasisFuncs:       b.BasisFuncs.Load(),
		OperatorCount:    b.OperatorCount.Load(),
		OperatorErrors:   b.OperatorErrors.Load(),
		OperatorAvgNanos: avg(b.OperatorNanos.Load(), b.OperatorCount.Load()),
		OperatorTotalNNZ: b.OperatorTotalNNZ.Load(),
		CacheMemoryHits:  b.CacheMemoryHits.Load(),
		CacheStoreHits:   b.CacheStoreHits.Load(),
		CacheMisses:      b.CacheMisses.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BasisCount       int64
	BasisErrors      int64
	BasisAvgNanos    int64
	BasisFuncs       int64
	OperatorCount    int64
	OperatorErrors   int64
	OperatorAvgNanos int64
	OperatorTotalNNZ int64
	CacheMemoryHits  int64
	CacheStoreHits   int64
	CacheMisses      int64
}
