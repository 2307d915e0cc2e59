package lrucache

import (
	"container/list"
	"errors"
)

// ErrInvalidCapacity is returned when a requested cache capacity is less
// than one.
var ErrInvalidCapacity = errors.New("cache capacity must be at least 1")

// Cache is a bounded key-value store with least-recently-used eviction.
// Storing beyond capacity evicts the least recently used entry. Get and
// Store refresh an entry's recency; Contains does not.
//
// Cache is not safe for concurrent use. See the package documentation.
type Cache[V any] struct {
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

// entry is what the recency list elements hold. The key is kept with the
// value because eviction walks the list, not the map.
type entry[V any] struct {
	key   string
	value V
}

// New creates a Cache that holds at most capacity entries. A capacity less
// than one returns ErrInvalidCapacity.
func New[V any](capacity int) (*Cache[V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Cache[V]{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}, nil
}

// Store associates value with key and returns the value. The entry becomes
// the most recently used, whether key was already present or not. If the
// cache was full and key was not present, the least recently used entry is
// evicted.
func (c *Cache[V]) Store(key string, value V) V {
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*entry[V]).value = value
		c.order.MoveToFront(elem)
		return value
	}
	c.entries[key] = c.order.PushFront(&entry[V]{key: key, value: value})
	c.evict()
	return value
}

// Get returns the value stored under key. The second return value reports
// whether key was present. A hit makes the entry the most recently used.
func (c *Cache[V]) Get(key string) (V, bool) {
	elem, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry[V]).value, true
}

// GetOrCompute returns the value stored under key if present. Otherwise it
// calls producer with the key, stores the produced value, and returns it.
// If producer fails, nothing is stored and the error is returned to the
// caller.
func (c *Cache[V]) GetOrCompute(key string, producer func(key string) (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := producer(key)
	if err != nil {
		var zero V
		return zero, err
	}
	return c.Store(key, value), nil
}

// Contains reports whether key is present without refreshing its recency.
func (c *Cache[V]) Contains(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// SetCapacity changes the maximum number of entries. Shrinking below the
// current size immediately evicts the least recently used entries until the
// cache fits. A capacity less than one returns ErrInvalidCapacity and
// leaves the cache unchanged.
func (c *Cache[V]) SetCapacity(capacity int) error {
	if capacity < 1 {
		return ErrInvalidCapacity
	}
	c.capacity = capacity
	c.evict()
	return nil
}

// Capacity returns the maximum number of entries the cache holds.
func (c *Cache[V]) Capacity() int {
	return c.capacity
}

// Clear removes all entries. The capacity is unchanged.
func (c *Cache[V]) Clear() {
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

// Len returns the number of entries currently cached.
func (c *Cache[V]) Len() int {
	return len(c.entries)
}

// Keys returns the cached keys ordered from most recently used to least
// recently used.
func (c *Cache[V]) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*entry[V]).key)
	}
	return keys
}

func (c *Cache[V]) evict() {
	for len(c.entries) > c.capacity {
		elem := c.order.Back()
		if elem == nil {
			return
		}
		delete(c.entries, elem.Value.(*entry[V]).key)
		c.order.Remove(elem)
	}
}
