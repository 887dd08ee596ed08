package rbtree_test

import (
	"unsafe"

	"github.com/redblack-systems/rbtree/pkg/rbtree"
)

// item is a stand-in payload for an intrusive caller: the tree never sees
// key, only the embedded Node. Because Node is item's first field, a
// *rbtree.Node handed back by the tree shares item's address, so converting
// it back to *item is a legal, zero-cost reinterpretation — the same
// technique any intrusive-container caller uses to recover its payload from
// a bare node reference.
type item struct {
	rbtree.Node
	key int
}

func payload(n *rbtree.Node) *item {
	return (*item)(unsafe.Pointer(n)) //nolint:gosec // n always points at an item.Node by construction.
}

// insertKey performs the BST descent a caller owns, then hands the new leaf
// to the tree's linkage primitives.
func insertKey(tree *rbtree.Tree, key int) *item {
	it := &item{key: key}

	root := tree.Root()
	if root == nil {
		tree.Link(&it.Node, nil, rbtree.LeftSide)
		tree.InsertFixup(&it.Node)

		return it
	}

	cur := root
	for {
		curKey := payload(cur).key

		switch {
		case key < curKey:
			if cur.Left() == nil {
				tree.Link(&it.Node, cur, rbtree.LeftSide)
				tree.InsertFixup(&it.Node)

				return it
			}

			cur = cur.Left()
		default:
			if cur.Right() == nil {
				tree.Link(&it.Node, cur, rbtree.RightSide)
				tree.InsertFixup(&it.Node)

				return it
			}

			cur = cur.Right()
		}
	}
}

// findNode returns the node carrying key, or nil if absent.
func findNode(tree *rbtree.Tree, key int) *rbtree.Node {
	cur := tree.Root()

	for cur != nil {
		curKey := payload(cur).key

		switch {
		case key == curKey:
			return cur
		case key < curKey:
			cur = cur.Left()
		default:
			cur = cur.Right()
		}
	}

	return nil
}

// eraseKey removes key from the tree, reporting whether it was present.
func eraseKey(tree *rbtree.Tree, key int) bool {
	n := findNode(tree, key)
	if n == nil {
		return false
	}

	tree.Erase(n)

	return true
}

// inorderKeys walks the tree front to back, collecting keys.
func inorderKeys(tree *rbtree.Tree) []int {
	keys := []int{}

	for n := tree.First(); n != nil; n = rbtree.Next(n) {
		keys = append(keys, payload(n).key)
	}

	return keys
}

// countNodes counts nodes by walking parent/child links from the root,
// independent of inorderKeys, to cross-check tree size.
func countNodes(n *rbtree.Node) int {
	if n == nil {
		return 0
	}

	return 1 + countNodes(n.Left()) + countNodes(n.Right())
}

// blackHeight returns the black-height of the subtree rooted at n (number of
// black nodes on a root-to-nil path, counting n itself if black), or -1 if n's subtree
// violates the constant-black-height invariant.
func blackHeight(n *rbtree.Node) int {
	if n == nil {
		return 0
	}

	left := blackHeight(n.Left())
	right := blackHeight(n.Right())

	if left == -1 || right == -1 || left != right {
		return -1
	}

	if n.Color() == rbtree.Black {
		return left + 1
	}

	return left
}
