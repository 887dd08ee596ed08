//go:build !rbtree_debug

package rbtree

// debugCheck is a no-op in release builds. Build with -tags rbtree_debug to
// verify invariants after every mutating operation (see invariants_debug.go).
func debugCheck(*Tree) {}
