// Package ordset provides ordered set and multiset containers built directly
// on top of pkg/rbtree: a demonstration that the core tree's caller-driven
// placement policy is enough to implement an ordinary ordered container, with
// no changes to the linkage or rebalancing code.
package ordset

import (
	"cmp"
	"unsafe"

	"github.com/redblack-systems/rbtree/pkg/rbtree"
)

// Set holds a collection of distinct keys of type K in sorted order. The
// zero Set is empty and ready to use.
type Set[K cmp.Ordered] struct {
	tree  rbtree.Tree
	count int
}

type setEntry[K cmp.Ordered] struct {
	rbtree.Node
	key K
}

// nodeToSetEntry recovers the payload an entry's embedded Node lives inside.
// It depends on rbtree.Node being setEntry's first field, as it always is by
// construction here.
func nodeToSetEntry[K cmp.Ordered](n *rbtree.Node) *setEntry[K] {
	return (*setEntry[K])(unsafe.Pointer(n)) //nolint:gosec // n always points at a setEntry[K].Node by construction.
}

// Len reports the number of distinct keys in s.
func (s *Set[K]) Len() int { return s.count }

// Contains reports whether key is present in s.
func (s *Set[K]) Contains(key K) bool {
	_, found := s.locate(key)

	return found
}

// Insert adds key to s, returning false if it was already present.
func (s *Set[K]) Insert(key K) bool {
	parent, side, existing := s.descend(key)
	if existing != nil {
		return false
	}

	e := &setEntry[K]{key: key}
	s.tree.Link(&e.Node, parent, side)
	s.tree.InsertFixup(&e.Node)
	s.count++

	return true
}

// Delete removes key from s, returning false if it was not present.
func (s *Set[K]) Delete(key K) bool {
	e, found := s.locate(key)
	if !found {
		return false
	}

	s.tree.Erase(&e.Node)
	s.count--

	return true
}

// Ascend calls fn for every key in s in ascending order, stopping early if
// fn returns false.
func (s *Set[K]) Ascend(fn func(K) bool) {
	for n := s.tree.First(); n != nil; n = rbtree.Next(n) {
		if !fn(nodeToSetEntry[K](n).key) {
			return
		}
	}
}

// Min returns the smallest key in s, or false if s is empty.
func (s *Set[K]) Min() (K, bool) {
	n := s.tree.First()
	if n == nil {
		var zero K

		return zero, false
	}

	return nodeToSetEntry[K](n).key, true
}

// Max returns the largest key in s, or false if s is empty.
func (s *Set[K]) Max() (K, bool) {
	n := s.tree.Last()
	if n == nil {
		var zero K

		return zero, false
	}

	return nodeToSetEntry[K](n).key, true
}

func (s *Set[K]) locate(key K) (*setEntry[K], bool) {
	n := s.tree.Root()
	for n != nil {
		e := nodeToSetEntry[K](n)

		switch {
		case key < e.key:
			n = n.Left()
		case key > e.key:
			n = n.Right()
		default:
			return e, true
		}
	}

	return nil, false
}

// descend walks from the root to the parent under which key belongs,
// reporting which side it belongs on, or the existing entry if key is
// already present.
func (s *Set[K]) descend(key K) (parent *rbtree.Node, side rbtree.Side, existing *setEntry[K]) {
	var p *rbtree.Node

	sideChoice := rbtree.LeftSide

	n := s.tree.Root()
	for n != nil {
		e := nodeToSetEntry[K](n)
		p = n

		switch {
		case key < e.key:
			sideChoice = rbtree.LeftSide
			n = n.Left()
		case key > e.key:
			sideChoice = rbtree.RightSide
			n = n.Right()
		default:
			return nil, 0, e
		}
	}

	return p, sideChoice, nil
}
