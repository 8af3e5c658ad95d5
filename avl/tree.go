// Package avl implements an ordered map as an AVL tree with order statistics.
//
// Alongside insert, delete and lookup, the tree answers rank and select
// queries: Rank gives a key's 1-based position in ascending key order and
// Select gives the key at a position. Every node caches its subtree size for
// this, so all operations run in O(log n).
//
// A Tree is not safe for concurrent use.
package avl

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// node is a tree node. height and size are cached and maintained on every
// mutation; a leaf has height 0 and size 1.
type node[K constraints.Ordered, V any] struct {
	key    K
	value  V
	left   *node[K, V]
	right  *node[K, V]
	parent *node[K, V]
	height int
	size   int
}

// Tree is an ordered map from K to V.
//
// The zero value is an empty tree ready to use.
type Tree[K constraints.Ordered, V any] struct {
	root *node[K, V]
}

// New returns an empty tree.
func New[K constraints.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{}
}

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.root == nil
}

// Clear removes all keys.
func (t *Tree[K, V]) Clear() {
	t.root = nil
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	return size(t.root)
}

// Height returns the height of the tree: -1 when empty, 0 for a single key.
func (t *Tree[K, V]) Height() int {
	return height(t.root)
}

// Contains reports whether key is in the tree.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.find(key) != nil
}

// Get returns the value stored under key.
func (t *Tree[K, V]) Get(key K) (value V, ok bool) {
	n := t.find(key)
	if n == nil {
		return value, false
	}
	return n.value, true
}

// Insert adds key with the given value. If the key is already present the
// tree is left untouched and Insert returns false.
func (t *Tree[K, V]) Insert(key K, value V) bool {
	var parent *node[K, V]

	n := t.root
	for n != nil {
		parent = n
		switch {
		case key == n.key:
			return false
		case key < n.key:
			n = n.left
		default:
			n = n.right
		}
	}

	nn := &node[K, V]{key: key, value: value, size: 1, parent: parent}
	switch {
	case parent == nil:
		t.root = nn
	case key < parent.key:
		parent.left = nn
	default:
		parent.right = nn
	}

	t.rebalance(parent)
	return true
}

// Delete removes key from the tree, reporting whether it was present.
//
// A node with two children is replaced by its in-order successor, the
// leftmost node of its right subtree; rebalancing then starts at the deepest
// point whose subtree changed.
func (t *Tree[K, V]) Delete(key K) bool {
	n := t.find(key)
	if n == nil {
		return false
	}

	start := n.parent

	switch {
	case n.left == nil && n.right == nil:
		t.elevate(n, nil)
	case n.left == nil:
		t.elevate(n, n.right)
	case n.right == nil:
		t.elevate(n, n.left)
	default:
		succ := n.right.min()
		start = succ.parent

		if succ.parent != n {
			// Detach the successor and give it n's right subtree.
			t.elevate(succ, succ.right)
			succ.right = n.right
			n.right.parent = succ
		} else {
			start = succ
		}

		t.elevate(n, succ)
		succ.left = n.left
		n.left.parent = succ
	}

	t.rebalance(start)
	return true
}

// Min returns the smallest key in the tree.
func (t *Tree[K, V]) Min() (key K, ok bool) {
	if t.root == nil {
		return key, false
	}
	return t.root.min().key, true
}

// Max returns the largest key in the tree.
func (t *Tree[K, V]) Max() (key K, ok bool) {
	if t.root == nil {
		return key, false
	}
	return t.root.max().key, true
}

// Select returns the key with the given 1-based rank in ascending key order,
// so Select(1) is the minimum and Select(t.Len()) the maximum.
func (t *Tree[K, V]) Select(rank int) (key K, ok bool) {
	if rank < 1 || rank > t.Len() {
		return key, false
	}

	n := t.root
	for {
		current := size(n.left) + 1
		switch {
		case rank == current:
			return n.key, true
		case rank < current:
			n = n.left
		default:
			n = n.right
			rank -= current
		}
	}
}

// Rank returns the 1-based rank of key in ascending key order. ok is false
// when the key is not in the tree.
func (t *Tree[K, V]) Rank(key K) (rank int, ok bool) {
	n := t.find(key)
	if n == nil {
		return 0, false
	}

	rank = size(n.left) + 1
	for ; n.parent != nil; n = n.parent {
		if n.parent.right == n {
			rank += size(n.parent.left) + 1
		}
	}

	return rank, true
}

// InOrder returns all keys in ascending order.
//
// The walk uses Morris threading: predecessor nodes are temporarily linked to
// their successors and relinked afterwards, so no recursion and no stack are
// needed and the tree comes out structurally unchanged.
func (t *Tree[K, V]) InOrder() []K {
	keys := make([]K, 0, t.Len())

	current := t.root
	for current != nil {
		if current.left == nil {
			keys = append(keys, current.key)
			current = current.right
			continue
		}

		pre := current.left
		for pre.right != nil && pre.right != current {
			pre = pre.right
		}

		if pre.right == nil {
			pre.right = current
			current = current.left
		} else {
			pre.right = nil
			keys = append(keys, current.key)
			current = current.right
		}
	}

	return keys
}

// String renders the tree sideways for debugging: the right subtree on top,
// the root bottom-left.
func (t *Tree[K, V]) String() string {
	var sb strings.Builder
	t.root.dump(&sb, "", true)
	return sb.String()
}

// find returns the node with the given key, or nil.
func (t *Tree[K, V]) find(key K) *node[K, V] {
	n := t.root
	for n != nil {
		switch {
		case key == n.key:
			return n
		case key < n.key:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil
}

// elevate replaces u by v as the child of u's parent. v may be nil.
func (t *Tree[K, V]) elevate(u, v *node[K, V]) {
	switch {
	case u.parent == nil:
		t.root = v
	case u.parent.left == u:
		u.parent.left = v
	default:
		u.parent.right = v
	}

	if v != nil {
		v.parent = u.parent
	}
}

// min returns the leftmost node of the subtree rooted in n.
func (n *node[K, V]) min() *node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// max returns the rightmost node of the subtree rooted in n.
func (n *node[K, V]) max() *node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

func (n *node[K, V]) dump(sb *strings.Builder, prefix string, isTail bool) {
	if n == nil {
		return
	}

	if n.right != nil {
		branch := "    "
		if isTail {
			branch = "│   "
		}
		n.right.dump(sb, prefix+branch, false)
	}

	sb.WriteString(prefix)
	if isTail {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("┌── ")
	}
	fmt.Fprintf(sb, "%v\n", n.key)

	if n.left != nil {
		branch := "│   "
		if isTail {
			branch = "    "
		}
		n.left.dump(sb, prefix+branch, true)
	}
}

// size returns the cached subtree size, 0 for nil.
func size[K constraints.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return n.size
}

// height returns the cached subtree height, -1 for nil.
func height[K constraints.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return -1
	}
	return n.height
}
