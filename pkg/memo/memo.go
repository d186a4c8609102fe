package memo

import (
	"container/list"
	"sync"
)

// Func computes the value for a key. Implementations must be pure:
// the same key must always produce the same value, with no side
// effects, or memoization would change observable behavior.
type Func func(key string) string

// Stats holds cache hit/miss counters since construction.
type Stats struct {
	Hits   uint64
	Misses uint64
}

type entry struct {
	key   string
	value string
}

// Cache memoizes a pure Func behind a bounded least-recently-used
// map. It exists purely as an optimization: removing it changes
// latency, never output. All methods are concurrent-safe.
type Cache struct {
	mu       sync.Mutex
	capacity int
	fn       Func
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
	stats    Stats
}

// New creates a Cache over fn holding at most capacity distinct keys.
// A capacity below 1 is clamped to 1, since a memoization cache must
// never make the wrapped call fail.
func New(capacity int, fn Func) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		fn:       fn,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Get returns the memoized value for key, computing and storing it on
// first use. When the cache is full, the least-recently-used entry is
// evicted to make room.
func (c *Cache) Get(key string) string {
	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		c.stats.Hits++
		v := el.Value.(*entry).value
		c.mu.Unlock()
		return v
	}
	c.stats.Misses++
	c.mu.Unlock()

	// Compute outside the lock; fn is pure, so a racing duplicate
	// computation for the same key yields an identical value.
	v := c.fn(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry).value
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}
	c.entries[key] = c.order.PushFront(&entry{key: key, value: v})
	return v
}

// Contains reports whether key is currently cached without updating
// its recency or the counters.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns a snapshot of the hit/miss counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
