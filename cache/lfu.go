package cache

import (
	"fmt"
	"strings"

	"github.com/yakirhiz/data-structures/util"
)

/*
LFU is a fixed-capacity cache that evicts the least frequently used entry,
breaking ties by evicting the least recently promoted one.

Lookup, insertion, update and eviction all run in constant time. Frequency
classes are kept as a ring of buckets in strictly ascending order, anchored by
a permanent frequency-0 sentinel that never holds entries. The bucket right
after the sentinel is therefore always the lowest live frequency class, and
its tail entry is the eviction victim.

An LFU is not safe for concurrent use; callers that share one instance across
goroutines must serialize access themselves.
*/
type LFU[K comparable, V any] struct {
	capacity int
	items    map[K]*entry[K, V]

	// ladder is the sentinel bucket of the frequency ring. It stays
	// linked, and its recency ring stays empty, for the lifetime of the
	// cache.
	ladder bucket[K, V]
}

// NewLFU creates an empty LFU cache holding at most capacity entries.
//
// A non-positive capacity is accepted rather than rejected: the cache then
// silently ignores every Put. Callers that need to know whether a key made it
// in can check with Contains.
func NewLFU[K comparable, V any](capacity int) *LFU[K, V] {
	l := &LFU[K, V]{
		capacity: capacity,
		items:    make(map[K]*entry[K, V], util.Max(capacity, 0)),
	}
	l.ladder.prev = &l.ladder
	l.ladder.next = &l.ladder
	l.ladder.initRing()
	return l
}

// Get returns the value stored under key.
//
// A hit counts as an access: the entry moves up one frequency class before
// the value is returned. Get is therefore a structurally mutating read, even
// though the cache contents are unchanged. A miss has no effect.
func (l *LFU[K, V]) Get(key K) (value V, ok bool) {
	e, ok := l.items[key]
	if !ok {
		return value, false
	}
	l.promote(e)
	return e.value, true
}

// Put stores value under key.
//
// If the key is already present its value is overwritten and the entry is
// promoted exactly as a Get would, so an update counts as an access. A new
// key enters at frequency 1, evicting the least frequently used entry first
// if the cache is full. On a cache with non-positive capacity Put does
// nothing.
func (l *LFU[K, V]) Put(key K, value V) {
	if l.capacity <= 0 {
		return
	}

	if e, ok := l.items[key]; ok {
		e.value = value
		l.promote(e)
		return
	}

	if len(l.items) == l.capacity {
		l.evict()
	}

	// New entries start out owned by the sentinel, so raising them lands
	// them in the frequency-1 bucket.
	e := &entry[K, V]{key: key, value: value, owner: &l.ladder}
	l.items[key] = e
	l.raise(e)
}

// Peek returns the value stored under key without promoting the entry.
func (l *LFU[K, V]) Peek(key K) (value V, ok bool) {
	if e, found := l.items[key]; found {
		return e.value, true
	}
	return value, false
}

// Contains reports whether key is in the cache, without promoting it.
func (l *LFU[K, V]) Contains(key K) bool {
	_, ok := l.items[key]
	return ok
}

// Len returns the number of entries currently in the cache.
func (l *LFU[K, V]) Len() int {
	return len(l.items)
}

// Cap returns the capacity the cache was created with.
func (l *LFU[K, V]) Cap() int {
	return l.capacity
}

// Keys returns all keys in eviction order: ascending by frequency and, within
// one frequency class, least recently promoted first. Keys()[0] is the next
// victim.
func (l *LFU[K, V]) Keys() []K {
	keys := make([]K, 0, len(l.items))
	for b := l.ladder.next; b != &l.ladder; b = b.next {
		for e := b.root.prev; e != &b.root; e = e.prev {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// String renders the frequency ladder for debugging, one bucket per
// "freq:[keys]" group in ascending frequency order, keys listed from most to
// least recently promoted.
func (l *LFU[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("LFU{")
	for b := l.ladder.next; b != &l.ladder; b = b.next {
		if b != l.ladder.next {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d:[", b.freq)
		for e := b.root.next; e != &b.root; e = e.next {
			if e != b.root.next {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", e.key)
		}
		sb.WriteByte(']')
	}
	sb.WriteByte('}')
	return sb.String()
}

// promote moves a linked entry up one frequency class and drops its old
// bucket if that leaves the bucket empty.
func (l *LFU[K, V]) promote(e *entry[K, V]) {
	cur := e.owner
	cur.remove(e)
	l.raise(e)
	if cur != &l.ladder && cur.empty() {
		l.removeBucket(cur)
	}
}

// raise links the unlinked entry e into the bucket one frequency above its
// owner, creating that bucket first if the next frequency class is absent.
//
// Only the owner's immediate neighbor is ever inspected: because bucket
// frequencies are strictly ascending around the ring, the class freq+1 either
// sits directly after the owner or does not exist at all. The ring wraps back
// to the frequency-0 sentinel after the highest bucket, which never matches
// freq+1, so the top entry correctly gets a fresh bucket spliced in.
func (l *LFU[K, V]) raise(e *entry[K, V]) {
	cur := e.owner
	next := cur.next
	if next.freq != cur.freq+1 {
		next = l.insertBucketAfter(cur, cur.freq+1)
	}
	next.pushFront(e)
}

// evict removes the current victim: the tail entry of the lowest live
// frequency class. Must only be called while the cache has entries.
func (l *LFU[K, V]) evict() {
	lowest := l.ladder.next
	victim := lowest.tail()
	if victim == nil {
		panic("cache: eviction from empty ladder")
	}

	// Unlink and unregister in the same step; both views of the entry
	// must die together.
	lowest.remove(victim)
	delete(l.items, victim.key)
	if lowest.empty() {
		l.removeBucket(lowest)
	}
}

// insertBucketAfter splices a fresh bucket with the given frequency into the
// ring directly after b and returns it.
func (l *LFU[K, V]) insertBucketAfter(b *bucket[K, V], freq int) *bucket[K, V] {
	nb := newBucket[K, V](freq)
	nb.prev = b
	nb.next = b.next
	nb.prev.next = nb
	nb.next.prev = nb
	return nb
}

// removeBucket unlinks an empty bucket from the ring. Never called on the
// sentinel.
func (l *LFU[K, V]) removeBucket(b *bucket[K, V]) {
	b.prev.next = b.next
	b.next.prev = b.prev
	b.prev = nil
	b.next = nil
}
