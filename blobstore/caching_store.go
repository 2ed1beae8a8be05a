package blobstore

import (
	"context"
	"slices"

	"github.com/hupe1980/trispin/internal/cache"
	"github.com/hupe1980/trispin/resource"
)

// CachingStore wraps a Store and keeps recently read blobs in memory.
type CachingStore struct {
	inner Store
	cache *cache.LRU[string, []byte]
}

// NewCachingStore creates a CachingStore holding up to capacityBytes of blob
// data. rc, if non-nil, is charged for the cached bytes.
func NewCachingStore(inner Store, capacityBytes int64, rc *resource.Controller) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU[string, []byte](capacityBytes, func(b []byte) int64 { return int64(len(b)) }, rc),
	}
}

// Get serves a blob from the cache, falling back to the inner store.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if b, ok := s.cache.Get(name); ok {
		return slices.Clone(b), nil
	}
	b, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, slices.Clone(b))
	return b, nil
}

// Put writes through to the inner store and drops any cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Remove(name)
	return s.inner.Put(ctx, name, data)
}

// Delete removes the blob from both the cache and the inner store.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.Remove(name)
	return s.inner.Delete(ctx, name)
}

// List is served by the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns the cache hit and miss counters.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}
