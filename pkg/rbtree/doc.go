// Package rbtree implements an intrusive, ordered, balanced binary search
// tree with red-black coloring.
//
// The tree is intrusive: a [Node] is meant to be embedded as a field of a
// caller-owned payload struct, and the caller is responsible for allocating,
// comparing, and destroying its own payloads. The tree itself stores no key,
// no value, and performs no allocation — it only maintains the left/right/
// parent links and the red/black bit needed to keep the structure balanced.
//
// Placement (deciding where a new node belongs relative to existing keys) is
// the caller's job: descend the tree with your own comparator, find the
// parent and side for the new node, call [Tree.Link], then [Tree.InsertFixup].
// This leaves the core free of any comparison policy, so the same linkage
// code can back a set, a multiset, an interval tree, or a scheduler
// run-queue — see the pkg/ordset, pkg/interval, and pkg/runqueue packages in
// this module for worked examples, and pkg/arena for a handle-indexed,
// allocating wrapper around the same core.
//
// No operation in this package is safe for concurrent use on the same tree
// without external synchronization.
package rbtree
