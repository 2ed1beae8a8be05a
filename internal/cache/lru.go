package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/trispin/resource"
)

// LRU is a mutex-guarded least-recently-used cache.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int64
	size      int64
	weigh     func(V) int64
	items     map[K]*list.Element
	evictList *list.List
	rc        *resource.Controller

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key    K
	value  V
	weight int64
}

// NewLRU creates a cache holding at most capacity units. weigh returns the
// weight of a value; nil counts every entry as one unit. If rc is non-nil,
// admitted weight is charged to its memory budget.
func NewLRU[K comparable, V any](capacity int64, weigh func(V) int64, rc *resource.Controller) *LRU[K, V] {
	if weigh == nil {
		weigh = func(V) int64 { return 1 }
	}
	return &LRU[K, V]{
		capacity:  capacity,
		weigh:     weigh,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
		rc:        rc,
	}
}

// Get returns the cached value for key.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set caches value under key and reports whether it was admitted. Values
// heavier than the capacity, or that the resource controller cannot fund,
// are not cached; an existing entry for key is kept in that case.
func (c *LRU[K, V]) Set(key K, value V) bool {
	w := c.weigh(value)
	if w > c.capacity {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry[K, V])
		if delta := w - ent.weight; delta > 0 {
			if err := c.rc.TryAcquireMemory(delta); err != nil {
				return false
			}
		} else {
			c.rc.ReleaseMemory(-delta)
		}
		c.size += w - ent.weight
		ent.value, ent.weight = value, w
		c.evictList.MoveToFront(el)
		c.evict()
		return true
	}

	for c.size+w > c.capacity {
		back := c.evictList.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
	}

	if err := c.rc.TryAcquireMemory(w); err != nil {
		return false
	}

	c.items[key] = c.evictList.PushFront(&entry[K, V]{key: key, value: value, weight: w})
	c.size += w
	return true
}

// Remove drops key from the cache.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}
	return ok
}

// Invalidate removes every entry whose key matches predicate.
func (c *LRU[K, V]) Invalidate(predicate func(key K) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var toRemove []*list.Element
	for key, el := range c.items {
		if predicate(key) {
			toRemove = append(toRemove, el)
		}
	}
	for _, el := range toRemove {
		c.removeElement(el)
	}
}

// Purge removes every entry and returns its memory to the controller.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.evictList.Back(); el != nil; el = c.evictList.Back() {
		c.removeElement(el)
	}
}

func (c *LRU[K, V]) evict() {
	for c.size > c.capacity {
		back := c.evictList.Back()
		if back == nil {
			return
		}
		c.removeElement(back)
	}
}

func (c *LRU[K, V]) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	ent := el.Value.(*entry[K, V])
	delete(c.items, ent.key)
	c.size -= ent.weight
	c.rc.ReleaseMemory(ent.weight)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Size returns the total weight of the cached entries.
func (c *LRU[K, V]) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns the hit and miss counters.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
