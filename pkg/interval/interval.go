// Package interval provides an interval tree keyed on [low, high) ranges,
// built directly on pkg/rbtree. Each node additionally tracks the maximum
// high endpoint anywhere in its subtree; the tree re-derives that cached
// maximum after every insert and erase, covering every rotation and splice
// the core performs, demonstrating
// that augmentation survives the core's linkage primitives unmodified as
// long as the caller keeps the augmentation current itself.
package interval

import (
	"unsafe"

	"github.com/redblack-systems/rbtree/pkg/rbtree"
)

// Range is a half-open interval [Low, High).
type Range struct {
	Low, High int64
}

func (r Range) overlaps(other Range) bool {
	return r.Low < other.High && other.Low < r.High
}

// Tree holds a collection of (possibly overlapping) Ranges. The zero Tree
// is empty and ready to use.
type Tree struct {
	tree  rbtree.Tree
	count int
}

type entry struct {
	rbtree.Node
	span       Range
	subtreeMax int64
}

func nodeToEntry(n *rbtree.Node) *entry {
	return (*entry)(unsafe.Pointer(n)) //nolint:gosec // n always points at an entry.Node by construction.
}

// Len reports the number of ranges in t.
func (t *Tree) Len() int { return t.count }

// Insert adds span to t. Duplicate and overlapping spans are both
// permitted; spans are ordered by Low, and a span whose Low equals existing
// ones is placed after all of them, so insertion order among equal-Low spans
// is stable.
func (t *Tree) Insert(span Range) {
	var parent *rbtree.Node

	side := rbtree.LeftSide

	n := t.tree.Root()
	for n != nil {
		e := nodeToEntry(n)
		parent = n

		if span.Low < e.span.Low {
			side = rbtree.LeftSide
			n = n.Left()
		} else {
			side = rbtree.RightSide
			n = n.Right()
		}
	}

	e := &entry{span: span, subtreeMax: span.High}
	t.tree.Link(&e.Node, parent, side)
	t.tree.InsertFixup(&e.Node)
	t.count++

	fixupAncestorMax(&e.Node)
}

// Delete removes one occurrence of span from t, returning false if no
// matching span was found.
//
// Unlike Insert's ancestor-only walk, Delete recomputes every node's cached
// maximum from the root down: the core's two-children erase case can splice
// a successor from deep in the deleted node's right subtree into its place,
// and that successor's own cached maximum is now stale too, not just its
// former ancestors'. The core's public API reports no more than "n is
// erased," so the caller cannot target just the nodes that moved.
func (t *Tree) Delete(span Range) bool {
	n := t.tree.Root()
	for n != nil {
		e := nodeToEntry(n)

		switch {
		case span.Low < e.span.Low:
			n = n.Left()
		case span.Low > e.span.Low:
			n = n.Right()
		case span == e.span:
			t.tree.Erase(n)
			t.count--
			recomputeAll(t.tree.Root())

			return true
		default:
			// Same Low, different High. Equal-Low spans form one contiguous
			// in-order run, and rotations can leave members of it on either
			// side of n, so scan the run in both directions.
			var match *rbtree.Node

			for m := rbtree.Prev(n); match == nil && m != nil && nodeToEntry(m).span.Low == span.Low; m = rbtree.Prev(m) {
				if nodeToEntry(m).span == span {
					match = m
				}
			}

			for m := rbtree.Next(n); match == nil && m != nil && nodeToEntry(m).span.Low == span.Low; m = rbtree.Next(m) {
				if nodeToEntry(m).span == span {
					match = m
				}
			}

			n = match
		}
	}

	return false
}

// AnyOverlapping reports whether any range in t overlaps query, using the
// subtree-max augmentation to prune whole subtrees that cannot contain a
// match.
func (t *Tree) AnyOverlapping(query Range) bool {
	return search(t.tree.Root(), query)
}

// Overlapping calls fn for every range in t that overlaps query, in no
// particular order, stopping early if fn returns false.
func (t *Tree) Overlapping(query Range, fn func(Range) bool) {
	collect(t.tree.Root(), query, fn)
}

func search(n *rbtree.Node, query Range) bool {
	if n == nil {
		return false
	}

	e := nodeToEntry(n)
	if e.subtreeMax <= query.Low {
		return false
	}

	if left := n.Left(); left != nil && nodeToEntry(left).subtreeMax > query.Low {
		if search(left, query) {
			return true
		}
	}

	if e.span.overlaps(query) {
		return true
	}

	return search(n.Right(), query)
}

func collect(n *rbtree.Node, query Range, fn func(Range) bool) bool {
	if n == nil {
		return true
	}

	e := nodeToEntry(n)
	if e.subtreeMax <= query.Low {
		return true
	}

	if left := n.Left(); left != nil && nodeToEntry(left).subtreeMax > query.Low {
		if !collect(left, query, fn) {
			return false
		}
	}

	if e.span.overlaps(query) {
		if !fn(e.span) {
			return false
		}
	}

	return collect(n.Right(), query, fn)
}

// recomputeSubtreeMax recomputes n's own cached maximum from its own High
// and its children's cached maxima. It does not touch ancestors.
func recomputeSubtreeMax(n *rbtree.Node) {
	e := nodeToEntry(n)
	max := e.span.High

	if left := n.Left(); left != nil {
		if m := nodeToEntry(left).subtreeMax; m > max {
			max = m
		}
	}

	if right := n.Right(); right != nil {
		if m := nodeToEntry(right).subtreeMax; m > max {
			max = m
		}
	}

	e.subtreeMax = max
}

// fixupAncestorMax recomputes the cached maximum for n and every ancestor
// of n, the walk [Tree.Insert] needs after the core's rotations have
// rearranged the shape beneath them. Insertion rotations pivot only at
// ancestors of n, but a pivot can be rotated down off n's ancestor path;
// every such node ends up as a child of one of n's ancestors, so each
// ancestor's children are recomputed before the ancestor itself.
func fixupAncestorMax(n *rbtree.Node) {
	for n != nil {
		if left := n.Left(); left != nil {
			recomputeSubtreeMax(left)
		}

		if right := n.Right(); right != nil {
			recomputeSubtreeMax(right)
		}

		recomputeSubtreeMax(n)
		n = n.Parent()
	}
}

// recomputeAll recomputes every node's cached maximum bottom-up from n.
func recomputeAll(n *rbtree.Node) {
	if n == nil {
		return
	}

	recomputeAll(n.Left())
	recomputeAll(n.Right())
	recomputeSubtreeMax(n)
}
