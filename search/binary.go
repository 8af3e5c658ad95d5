// Package search implements generic search over sorted slices.
package search

import "golang.org/x/exp/constraints"

// Binary locates key in a slice sorted in ascending order.
//
// On a hit it returns the key's index and true. On a miss it returns false
// together with the insertion point: the index of the next greater element,
// or len(sorted) when every element is smaller.
func Binary[T constraints.Ordered](key T, sorted []T) (int, bool) {
	lo, hi := 0, len(sorted)

	// Invariant: everything left of lo is < key, everything from hi on
	// is > key.
	for lo < hi {
		mid := lo + (hi-lo)/2
		switch {
		case sorted[mid] < key:
			lo = mid + 1
		case sorted[mid] > key:
			hi = mid
		default:
			return mid, true
		}
	}

	return lo, false
}
