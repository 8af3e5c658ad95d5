package avl

import (
	"golang.org/x/exp/constraints"

	"github.com/yakirhiz/data-structures/util"
)

/*
rebalance walks from n up to the root, restoring the AVL balance invariant
and the cached height and size on the way.

A node whose subtrees differ in height by two is rotated; which of the four
rotations applies follows from the balance factors of the node and the taller
child. A single insert or delete leaves every node at most two out of
balance, so one rotation per level suffices.
*/
func (t *Tree[K, V]) rebalance(n *node[K, V]) {
	for ; n != nil; n = n.parent {
		switch balanceFactor(n) {
		case 2:
			if balanceFactor(n.left) == -1 {
				n = t.rotateLeftRight(n)
			} else {
				n = t.rotateRight(n)
			}
		case -2:
			if balanceFactor(n.right) == 1 {
				n = t.rotateRightLeft(n)
			} else {
				n = t.rotateLeft(n)
			}
		}
		n.update()
	}
}

// balanceFactor is the height of n's left subtree minus the height of its
// right subtree. The AVL invariant keeps it in {-1, 0, 1}.
func balanceFactor[K constraints.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

// update recomputes the cached height and size of n and of both children,
// children first. Rotations rewire pointers only and leave the caches to this.
func (n *node[K, V]) update() {
	if n == nil {
		return
	}
	n.left.refresh()
	n.right.refresh()
	n.refresh()
}

// refresh recomputes the cached height and size of n from its children.
func (n *node[K, V]) refresh() {
	if n == nil {
		return
	}
	n.height = util.Max(height(n.left), height(n.right)) + 1
	n.size = size(n.left) + size(n.right) + 1
}

// rotateRight rotates the subtree rooted in n to the right and returns the
// new subtree root, n's former left child. Heights and sizes are left to the
// caller.
func (t *Tree[K, V]) rotateRight(n *node[K, V]) *node[K, V] {
	root := n.left

	n.left = root.right
	if root.right != nil {
		root.right.parent = n
	}

	t.elevate(n, root)
	root.right = n
	n.parent = root

	return root
}

// rotateLeft rotates the subtree rooted in n to the left and returns the new
// subtree root, n's former right child.
func (t *Tree[K, V]) rotateLeft(n *node[K, V]) *node[K, V] {
	root := n.right

	n.right = root.left
	if root.left != nil {
		root.left.parent = n
	}

	t.elevate(n, root)
	root.left = n
	n.parent = root

	return root
}

// rotateLeftRight resolves a left-right imbalance: n's left subtree leans
// right. The grandchild n.left.right becomes the new subtree root.
func (t *Tree[K, V]) rotateLeftRight(n *node[K, V]) *node[K, V] {
	middle := n.left
	root := middle.right

	middle.right = root.left
	if root.left != nil {
		root.left.parent = middle
	}
	root.left = middle
	middle.parent = root

	n.left = root.right
	if root.right != nil {
		root.right.parent = n
	}

	t.elevate(n, root)
	root.right = n
	n.parent = root

	return root
}

// rotateRightLeft resolves a right-left imbalance: n's right subtree leans
// left. The grandchild n.right.left becomes the new subtree root.
func (t *Tree[K, V]) rotateRightLeft(n *node[K, V]) *node[K, V] {
	middle := n.right
	root := middle.left

	middle.left = root.right
	if root.right != nil {
		root.right.parent = middle
	}
	root.right = middle
	middle.parent = root

	n.right = root.left
	if root.left != nil {
		root.left.parent = n
	}

	t.elevate(n, root)
	root.left = n
	n.parent = root

	return root
}
