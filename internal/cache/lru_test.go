package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/trispin/resource"
)

func byteLen(b []byte) int64 { return int64(len(b)) }

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[string, int](2, nil, nil)

	assert.True(t, c.Set("a", 1))
	assert.True(t, c.Set("b", 2))

	// touch a so b becomes the oldest
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.True(t, c.Set("c", 3))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Get("c")
	assert.True(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_Weighted(t *testing.T) {
	c := NewLRU[string, []byte](50, byteLen, nil)

	assert.False(t, c.Set("big", make([]byte, 60)), "item > capacity should not be cached")
	_, ok := c.Get("big")
	assert.False(t, ok)

	c.Set("k", make([]byte, 10))
	assert.Equal(t, int64(10), c.Size())
	c.Set("k", make([]byte, 20))
	assert.Equal(t, int64(20), c.Size())
	c.Set("k", make([]byte, 5))
	assert.Equal(t, int64(5), c.Size())

	c.Set("x", make([]byte, 30))
	c.Set("y", make([]byte, 30)) // evicts k then x
	assert.Equal(t, int64(30), c.Size())
	assert.Equal(t, 1, c.Len())
}

func TestLRU_ResourceController(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 10})
	c := NewLRU[string, []byte](50, byteLen, rc)

	require.True(t, c.Set("k", make([]byte, 8)))
	assert.Equal(t, int64(8), rc.MemoryUsage())

	// growing to 12 would exceed the controller budget
	assert.False(t, c.Set("k", make([]byte, 12)))
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Len(t, v, 8)

	assert.False(t, c.Set("other", make([]byte, 5)))

	require.True(t, c.Remove("k"))
	assert.False(t, c.Remove("k"))
	assert.Equal(t, int64(0), rc.MemoryUsage())

	c.Set("a", make([]byte, 3))
	c.Set("b", make([]byte, 4))
	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestLRU_Invalidate(t *testing.T) {
	c := NewLRU[string, int](10, nil, nil)
	c.Set("bloch/a", 1)
	c.Set("bloch/b", 2)
	c.Set("other", 3)

	c.Invalidate(func(k string) bool { return len(k) > 6 && k[:6] == "bloch/" })
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("other")
	assert.True(t, ok)
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int, int](64, nil, nil)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				k := (g*1000 + i) % 100
				c.Set(k, i)
				c.Get(k)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 64)
	assert.Equal(t, int64(c.Len()), c.Size())
}
