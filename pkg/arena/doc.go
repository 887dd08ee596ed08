// Package arena implements a handle-indexed red-black tree backed by a
// growable slice allocator, rather than the pointer-intrusive linkage of
// [github.com/redblack-systems/rbtree/pkg/rbtree].
//
// Where the core package refuses to allocate and expects the caller to own
// node storage, arena owns it: every node lives in an Allocator's storage
// slice, addressed by a uint32 handle instead of a pointer. This buys three
// things the pointer-intrusive core cannot offer on its own: a tree that can
// be grown, shrunk, and re-laid-out by the allocator; node storage that can
// be deinterleaved, compressed, and temporarily discarded (Hibernate/Boot)
// without losing the tree it backs; and a handle space that survives a trip
// through a file (Serialize/Deserialize), because handles are plain integers
// rather than addresses that die with the process.
package arena
