package cache

// entry is a single key/value slot. Every live entry is linked into exactly
// one bucket's recency ring; the owning cache's key index holds a non-owning
// reference to it.
type entry[K comparable, V any] struct {
	key   K
	value V

	// prev and next link the entry into its bucket's recency ring.
	prev, next *entry[K, V]

	// owner is the bucket whose ring the entry currently sits in. The
	// entry's access frequency is owner.freq; it is never stored on the
	// entry itself, so it cannot drift.
	owner *bucket[K, V]
}

/*
bucket holds all entries sharing one access frequency, in recency order.

The entries form a circular doubly linked list anchored by the embedded
sentinel root: root.next is the head (most recently promoted entry) and
root.prev is the tail (least recently promoted, the eviction candidate of this
frequency class). An empty ring has root linked to itself.

Buckets themselves are linked into a second ring, ascending by freq, anchored
by a permanent frequency-0 sentinel bucket. A non-sentinel bucket exists only
while it has entries.
*/
type bucket[K comparable, V any] struct {
	freq int
	root entry[K, V]

	// prev and next link the bucket into the frequency ring.
	prev, next *bucket[K, V]
}

// newBucket returns an unlinked bucket for the given frequency with an empty
// recency ring.
func newBucket[K comparable, V any](freq int) *bucket[K, V] {
	b := &bucket[K, V]{freq: freq}
	b.root.next = &b.root
	b.root.prev = &b.root
	return b
}

// initRing resets the bucket's recency ring to empty. Used for sentinel
// buckets that are embedded in a cache struct rather than built by newBucket.
func (b *bucket[K, V]) initRing() {
	b.root.next = &b.root
	b.root.prev = &b.root
}

// empty reports whether the bucket holds no entries. Ring identity check, so
// constant time.
func (b *bucket[K, V]) empty() bool {
	return b.root.next == &b.root
}

// pushFront inserts e at the head of the ring, marking it as the most
// recently promoted entry of this frequency class, and takes ownership of it.
// e must not be linked into any ring.
func (b *bucket[K, V]) pushFront(e *entry[K, V]) {
	e.prev = &b.root
	e.next = b.root.next
	e.prev.next = e
	e.next.prev = e
	e.owner = b
}

// remove unlinks e from the ring. e.owner is left untouched so that callers
// can still tell which bucket the entry came from.
func (b *bucket[K, V]) remove(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil // avoid memory leaks
	e.next = nil // avoid memory leaks
}

// tail returns the least recently promoted entry, or nil if the bucket is
// empty.
func (b *bucket[K, V]) tail() *entry[K, V] {
	if b.empty() {
		return nil
	}
	return b.root.prev
}
