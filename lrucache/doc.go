// Package lrucache provides a bounded in-memory cache with
// least-recently-used eviction.
//
// The cache holds at most a fixed number of entries. Storing a new entry
// when the cache is full evicts the entry that was used least recently.
// Both reads and writes count as use: getting a key or overwriting its
// value moves it to the most recently used position, while a pure
// existence check does not.
//
// ## Intended Use
//
// The cache backs query responses keyed by their request URL. A response
// for a given URL at a given content version never changes, so entries do
// not carry a time-to-live. Invalidation happens wholesale: when the
// content version advances, the owner clears the cache rather than aging
// entries out.
//
// ## Concurrency
//
// A Cache performs no locking of its own. Every operation, including Get,
// mutates the internal recency list, so a cache shared between goroutines
// must be guarded by the caller, typically with a mutex around each call.
// Keeping synchronization out of the cache lets a single-goroutine user
// avoid paying for locks, and lets a sharing layer choose its own locking
// granularity.
package lrucache
