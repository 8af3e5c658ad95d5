// Package cache provides fixed-capacity, constant-time in-memory key/value
// caches with two eviction policies.
//
// LFU evicts the least frequently used entry, breaking ties by recency. It
// follows the layered design from "An O(1) algorithm for implementing the LFU
// cache eviction scheme" (Shah, Mitra, Matani): a ring of frequency buckets,
// each holding a recency ring of its entries, so that promotion and eviction
// never scan.
//
// LRU evicts the least recently used entry and is the single-ring subset of
// the same design.
//
// Neither cache is safe for concurrent use. There is no internal locking;
// links are rewired in multi-step sequences, so callers sharing an instance
// across goroutines must hold an exclusive lock around every operation.
package cache

// Cache is the contract shared by the caches in this package.
//
// Mind that for the LFU policy Get is not a pure read: a hit promotes the
// entry one frequency class. Use Peek to read without touching the eviction
// state of either policy.
type Cache[K comparable, V any] interface {
	// Get returns the value stored under key and records the access.
	// ok reports whether the key was found.
	Get(key K) (value V, ok bool)

	// Put stores value under key, evicting another entry if the cache is
	// full. Invalid input (non-positive capacity) is silently ignored.
	Put(key K, value V)

	// Peek returns the value stored under key without recording an
	// access. ok reports whether the key was found.
	Peek(key K) (value V, ok bool)

	// Contains reports whether key is in the cache, without recording an
	// access.
	Contains(key K) bool

	// Len returns the number of entries currently in the cache.
	Len() int

	// Cap returns the capacity the cache was created with.
	Cap() int

	// Keys returns all keys in eviction order: the first key is the next
	// victim.
	Keys() []K
}

var (
	_ Cache[int, int] = (*LFU[int, int])(nil)
	_ Cache[int, int] = (*LRU[int, int])(nil)
)
