package ordset

import (
	"cmp"
	"unsafe"

	"github.com/redblack-systems/rbtree/pkg/rbtree"
)

// Multiset holds a collection of keys of type K in sorted order, permitting
// duplicates. The zero Multiset is empty and ready to use.
type Multiset[K cmp.Ordered] struct {
	tree  rbtree.Tree
	count int
}

type multisetEntry[K cmp.Ordered] struct {
	rbtree.Node
	key K
}

func nodeToMultisetEntry[K cmp.Ordered](n *rbtree.Node) *multisetEntry[K] {
	return (*multisetEntry[K])(unsafe.Pointer(n)) //nolint:gosec // n always points at a multisetEntry[K].Node by construction.
}

// Len reports the total number of keys in m, counting duplicates.
func (m *Multiset[K]) Len() int { return m.count }

// Count reports how many times key occurs in m.
func (m *Multiset[K]) Count(key K) int {
	count := 0

	n := m.tree.Root()
	for n != nil {
		e := nodeToMultisetEntry[K](n)

		switch {
		case key < e.key:
			n = n.Left()
		case key > e.key:
			n = n.Right()
		default:
			// Equal keys form a contiguous run; count it by walking
			// outward via in-order neighbors.
			count++

			for p := rbtree.Prev(n); p != nil && nodeToMultisetEntry[K](p).key == key; p = rbtree.Prev(p) {
				count++
			}

			for nx := rbtree.Next(n); nx != nil && nodeToMultisetEntry[K](nx).key == key; nx = rbtree.Next(nx) {
				count++
			}

			return count
		}
	}

	return count
}

// Insert adds one occurrence of key to m. Duplicate keys are always placed
// to the right of every equal key already present, so insertion order among
// equal keys is preserved (a stable multiset).
func (m *Multiset[K]) Insert(key K) {
	var parent *rbtree.Node

	side := rbtree.LeftSide

	n := m.tree.Root()
	for n != nil {
		e := nodeToMultisetEntry[K](n)
		parent = n

		if key < e.key {
			side = rbtree.LeftSide
			n = n.Left()
		} else {
			side = rbtree.RightSide
			n = n.Right()
		}
	}

	e := &multisetEntry[K]{key: key}
	m.tree.Link(&e.Node, parent, side)
	m.tree.InsertFixup(&e.Node)
	m.count++
}

// DeleteOne removes a single occurrence of key from m, returning false if
// key was not present.
func (m *Multiset[K]) DeleteOne(key K) bool {
	n := m.tree.Root()
	for n != nil {
		e := nodeToMultisetEntry[K](n)

		switch {
		case key < e.key:
			n = n.Left()
		case key > e.key:
			n = n.Right()
		default:
			m.tree.Erase(n)
			m.count--

			return true
		}
	}

	return false
}

// Ascend calls fn for every key in m in ascending order (duplicates repeat),
// stopping early if fn returns false.
func (m *Multiset[K]) Ascend(fn func(K) bool) {
	for n := m.tree.First(); n != nil; n = rbtree.Next(n) {
		if !fn(nodeToMultisetEntry[K](n).key) {
			return
		}
	}
}
