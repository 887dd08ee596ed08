// Package runqueue implements a scheduler run-queue keyed by virtual
// runtime, built directly on pkg/rbtree. It demonstrates the core tree used
// as an ordered priority structure — always surfacing the runnable entity
// with the smallest accumulated virtual time — rather than as a general
// map or set.
package runqueue

import (
	"unsafe"

	"github.com/redblack-systems/rbtree/pkg/rbtree"
)

// Entry is one runnable entity's scheduling state. Callers embed Entry in
// their own task/goroutine/fiber payload and hand a pointer to it to
// [Queue.Enqueue]; the queue never allocates one itself.
type Entry struct {
	node     rbtree.Node
	vruntime uint64
	id       uint64
	enqueued bool
}

// Vruntime returns e's current virtual runtime.
func (e *Entry) Vruntime() uint64 { return e.vruntime }

// ID returns the identifier e was enqueued with.
func (e *Entry) ID() uint64 { return e.id }

func nodeToEntry(n *rbtree.Node) *Entry {
	return (*Entry)(unsafe.Pointer(n)) //nolint:gosec // n always points at an Entry.node by construction.
}

// Queue orders a set of Entry values by ascending virtual runtime, breaking
// ties by ascending id regardless of the order entries were enqueued in. The
// zero Queue is empty and ready to use.
type Queue struct {
	tree  rbtree.Tree
	count int
}

// Len reports the number of entries currently queued.
func (q *Queue) Len() int { return q.count }

// Enqueue adds e to q at the given virtual runtime and id. e must not
// already be queued.
func (q *Queue) Enqueue(e *Entry, vruntime, id uint64) {
	e.vruntime, e.id = vruntime, id

	var parent *rbtree.Node

	side := rbtree.LeftSide

	n := q.tree.Root()
	for n != nil {
		cur := nodeToEntry(n)
		parent = n

		if less(e, cur) {
			side = rbtree.LeftSide
			n = n.Left()
		} else {
			side = rbtree.RightSide
			n = n.Right()
		}
	}

	q.tree.Link(&e.node, parent, side)
	q.tree.InsertFixup(&e.node)
	q.count++
	e.enqueued = true
}

// Dequeue removes and returns the entry with the smallest virtual runtime,
// or nil if q is empty.
func (q *Queue) Dequeue() *Entry {
	n := q.tree.First()
	if n == nil {
		return nil
	}

	e := nodeToEntry(n)
	q.tree.Erase(n)
	q.count--
	e.enqueued = false

	return e
}

// Next returns the entry with the smallest virtual runtime without
// removing it, or nil if q is empty.
func (q *Queue) Next() *Entry {
	n := q.tree.First()
	if n == nil {
		return nil
	}

	return nodeToEntry(n)
}

// Remove removes e from q ahead of its turn, returning false if e is not
// currently queued.
func (q *Queue) Remove(e *Entry) bool {
	if !e.enqueued {
		return false
	}

	q.tree.Erase(&e.node)
	q.count--
	e.enqueued = false

	return true
}

// Reschedule removes e, advances its virtual runtime to vruntime, and
// re-enqueues it under its existing id — the operation a scheduler performs
// at the end of an entity's time slice.
func (q *Queue) Reschedule(e *Entry, vruntime uint64) {
	if e.enqueued {
		q.Remove(e)
	}

	q.Enqueue(e, vruntime, e.id)
}

func less(a, b *Entry) bool {
	if a.vruntime != b.vruntime {
		return a.vruntime < b.vruntime
	}

	return a.id < b.id
}
