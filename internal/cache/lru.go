package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the number of entries an LRU holds when no capacity is given.
const DefaultCapacity = 128

// LRU is a bounded map with least-recently-used eviction.
// Reads refresh recency. All methods are safe for concurrent use.
type LRU[K comparable, V any] struct {
	capacity int
	entries  *lru.Cache[K, V]
}

// NewLRU creates an LRU holding at most capacity entries.
// A capacity <= 0 falls back to DefaultCapacity.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	// lru.New only fails for a non-positive size
	entries, err := lru.New[K, V](capacity)
	if err != nil {
		panic(err)
	}
	return &LRU[K, V]{capacity: capacity, entries: entries}
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.entries.Get(key)
}

// Put stores value under key, evicting the least recently used entry when full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.entries.Add(key, value)
}

// Contains reports whether key is cached without touching recency.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.entries.Contains(key)
}

func (c *LRU[K, V]) Len() int {
	return c.entries.Len()
}

func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Reset drops every entry.
func (c *LRU[K, V]) Reset() {
	c.entries.Purge()
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
