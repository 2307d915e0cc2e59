package api

import (
	"sync"

	"github.com/foliocms/go-folio/lrucache"
)

// DefaultCacheCapacity is the capacity of the response cache shared by
// clients that are not configured with a cache of their own.
const DefaultCacheCapacity = 100

// ResponseCache is a synchronized LRU cache of search responses keyed by
// request URL. One ResponseCache may back any number of clients; all access
// goes through its mutex.
type ResponseCache struct {
	mutex sync.Mutex
	lru   *lrucache.Cache[*Response]
}

// NewResponseCache creates a ResponseCache holding at most capacity
// responses.
func NewResponseCache(capacity int) (*ResponseCache, error) {
	lru, err := lrucache.New[*Response](capacity)
	if err != nil {
		return nil, err
	}
	return &ResponseCache{
		lru: lru,
	}, nil
}

// Get returns the response cached under key, refreshing its recency.
func (c *ResponseCache) Get(key string) (*Response, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lru.Get(key)
}

// Store caches resp under key, evicting least recently used responses as
// needed to stay within capacity.
func (c *ResponseCache) Store(key string, resp *Response) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.lru.Store(key, resp)
}

// Contains reports whether key is cached. It does not refresh recency.
func (c *ResponseCache) Contains(key string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lru.Contains(key)
}

// SetCapacity changes the cache bound, evicting least recently used
// responses when shrinking below the current size.
func (c *ResponseCache) SetCapacity(capacity int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lru.SetCapacity(capacity)
}

// Clear discards every cached response.
func (c *ResponseCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.lru.Clear()
}

// Len returns the number of cached responses.
func (c *ResponseCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lru.Len()
}

// Keys returns the cached request URLs, most recently used first.
func (c *ResponseCache) Keys() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lru.Keys()
}

var (
	defaultCache     *ResponseCache
	defaultCacheOnce sync.Once
)

// DefaultCache returns the process-wide response cache used by clients that
// are not given a cache with WithCache or WithCacheCapacity. It is created
// on first use with DefaultCacheCapacity.
func DefaultCache() *ResponseCache {
	defaultCacheOnce.Do(func() {
		var err error
		defaultCache, err = NewResponseCache(DefaultCacheCapacity)
		if err != nil {
			panic(err.Error())
		}
	})
	return defaultCache
}
