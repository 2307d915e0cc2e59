package api_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliocms/go-folio/api"
	"github.com/foliocms/go-folio/lrucache"
)

func TestResponseCache(t *testing.T) {
	cache, err := api.NewResponseCache(2)
	require.NoError(t, err)

	a := &api.Response{Page: 1}
	b := &api.Response{Page: 2}
	c := &api.Response{Page: 3}

	cache.Store("a", a)
	cache.Store("b", b)
	require.True(t, cache.Contains("a"))
	require.Equal(t, 2, cache.Len())

	got, found := cache.Get("a")
	require.True(t, found)
	require.Same(t, a, got)

	// "b" is now least recently used and gets evicted.
	cache.Store("c", c)
	require.False(t, cache.Contains("b"))
	require.Equal(t, []string{"c", "a"}, cache.Keys())

	require.ErrorIs(t, cache.SetCapacity(0), lrucache.ErrInvalidCapacity)
	require.NoError(t, cache.SetCapacity(1))
	require.Equal(t, 1, cache.Len())
	require.True(t, cache.Contains("c"))

	cache.Clear()
	require.Zero(t, cache.Len())
	require.Empty(t, cache.Keys())
}

func TestNewResponseCacheInvalidCapacity(t *testing.T) {
	_, err := api.NewResponseCache(0)
	require.ErrorIs(t, err, lrucache.ErrInvalidCapacity)
}

func TestDefaultCacheShared(t *testing.T) {
	require.Same(t, api.DefaultCache(), api.DefaultCache())
}

func TestResponseCacheConcurrentAccess(t *testing.T) {
	cache, err := api.NewResponseCache(8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := strconv.Itoa(n)
			for j := 0; j < 100; j++ {
				cache.Store(key, &api.Response{Page: n})
				cache.Get(key)
				cache.Contains(key)
				cache.Keys()
			}
		}(i)
	}
	wg.Wait()
	require.LessOrEqual(t, cache.Len(), 8)
}
