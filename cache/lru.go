package cache

import (
	"fmt"
	"strings"

	"github.com/yakirhiz/data-structures/util"
)

/*
LRU is a fixed-capacity cache that evicts the least recently used entry.

It is the single-ring degenerate form of the LFU cache: one recency ring, no
frequency ladder. Every access moves the entry to the head of the ring, so the
tail is always the eviction victim. All operations run in constant time.

An LRU is not safe for concurrent use; callers that share one instance across
goroutines must serialize access themselves.
*/
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]*entry[K, V]

	// ring holds all entries in recency order. Only its recency ring is
	// used; the frequency and bucket links stay zero.
	ring bucket[K, V]
}

// NewLRU creates an empty LRU cache holding at most capacity entries.
//
// A non-positive capacity is accepted: the cache then silently ignores every
// Put, the same degrade-silently policy the LFU cache follows.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	l := &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*entry[K, V], util.Max(capacity, 0)),
	}
	l.ring.initRing()
	return l
}

// Get returns the value stored under key, marking the entry as the most
// recently used. A miss has no effect.
func (l *LRU[K, V]) Get(key K) (value V, ok bool) {
	e, ok := l.items[key]
	if !ok {
		return value, false
	}
	l.touch(e)
	return e.value, true
}

// Put stores value under key.
//
// An existing key is overwritten and refreshed as if it had been read. A new
// key evicts the least recently used entry first if the cache is full. On a
// cache with non-positive capacity Put does nothing.
func (l *LRU[K, V]) Put(key K, value V) {
	if l.capacity <= 0 {
		return
	}

	if e, ok := l.items[key]; ok {
		e.value = value
		l.touch(e)
		return
	}

	if len(l.items) == l.capacity {
		victim := l.ring.tail()
		l.ring.remove(victim)
		delete(l.items, victim.key)
	}

	e := &entry[K, V]{key: key, value: value}
	l.items[key] = e
	l.ring.pushFront(e)
}

// Peek returns the value stored under key without refreshing its recency.
func (l *LRU[K, V]) Peek(key K) (value V, ok bool) {
	if e, found := l.items[key]; found {
		return e.value, true
	}
	return value, false
}

// Contains reports whether key is in the cache, without refreshing it.
func (l *LRU[K, V]) Contains(key K) bool {
	_, ok := l.items[key]
	return ok
}

// Len returns the number of entries currently in the cache.
func (l *LRU[K, V]) Len() int {
	return len(l.items)
}

// Cap returns the capacity the cache was created with.
func (l *LRU[K, V]) Cap() int {
	return l.capacity
}

// Keys returns all keys in eviction order, least recently used first.
// Keys()[0] is the next victim.
func (l *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, len(l.items))
	for e := l.ring.root.prev; e != &l.ring.root; e = e.prev {
		keys = append(keys, e.key)
	}
	return keys
}

// String renders the recency ring for debugging, keys listed from most to
// least recently used.
func (l *LRU[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("LRU{[")
	for e := l.ring.root.next; e != &l.ring.root; e = e.next {
		if e != l.ring.root.next {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v", e.key)
	}
	sb.WriteString("]}")
	return sb.String()
}

// touch moves an entry to the head of the ring.
func (l *LRU[K, V]) touch(e *entry[K, V]) {
	l.ring.remove(e)
	l.ring.pushFront(e)
}
