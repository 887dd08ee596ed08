package rbtree

// Erase removes n from the tree and restores the red-black invariants. n
// must currently be linked into the tree. After Erase returns, n is
// detached (its left, right, and parent fields are all nil) and may be
// reused or discarded by the caller.
//
// Erase returns the number of ancestor levels the fixup walk climbed and the
// number of rotations it performed, so callers that feed
// [pkg/metrics.Collectors] can report real fixup cost instead of a constant.
func (t *Tree) Erase(n *Node) (walkDepth, rotations int) {
	// x is the node that moves into the deficient slot left behind by the
	// physical removal below; it may be absent (nil), in which case
	// xParent records where it would have hung had it existed. This pair
	// is what the color fixup walks from.
	var x, xParent *Node

	removedColor := n.color

	switch {
	case n.left == nil:
		x, xParent = n.right, n.parent
		t.transplant(n, n.right)
	case n.right == nil:
		x, xParent = n.left, n.parent
		t.transplant(n, n.left)
	default:
		// n has both children: splice the in-order successor s into n's
		// slot. Because the tree is intrusive, s itself — not a copy of a
		// key — must become n's replacement; n and s trade places.
		s := leftmost(n.right)
		removedColor = s.color

		if s.parent == n {
			x, xParent = s.right, s
		} else {
			x, xParent = s.right, s.parent
			t.transplant(s, s.right)
			s.right = n.right
			s.right.parent = s
		}

		t.transplant(n, s)
		s.left = n.left
		s.left.parent = s
		s.color = n.color
	}

	if removedColor == Black {
		walkDepth, rotations = t.eraseFixup(x, xParent)
	}

	n.left, n.right, n.parent = nil, nil, nil

	debugCheck(t)

	return walkDepth, rotations
}

// transplant repoints whatever referenced oldn (the tree root or oldn's
// parent's matching child slot) at newn, and repoints newn's parent at
// oldn's former parent. newn may be nil.
func (t *Tree) transplant(oldn, newn *Node) {
	t.setChildOrRoot(oldn, newn)

	if newn != nil {
		newn.parent = oldn.parent
	}
}

// eraseFixup restores invariants 1-3 after a black node has been physically
// removed, leaving the path through (parent, x) one black short. x may be
// nil; parent is x's would-be parent in that case.
func (t *Tree) eraseFixup(x, parent *Node) (walkDepth, rotations int) {
	for parent != nil && colorOf(x) == Black {
		walkDepth++

		if x == parent.left {
			w := parent.right

			if colorOf(w) == Red {
				// Case 1: sibling red. Rotate toward x's side to expose a
				// black sibling, then re-derive it.
				t.rotateRecolor(parent, rotateLeftDir, Red, Black)
				rotations++
				w = parent.right
			}

			if colorOf(w.left) == Black && colorOf(w.right) == Black {
				// Case 2: sibling black, both nephews black. Move the
				// deficiency up one level.
				w.color = Red
				x, parent = parent, parent.parent

				continue
			}

			if colorOf(w.right) == Black {
				// Case 3: sibling black, inner nephew red, outer black.
				// Rotate away from x's side to convert to Case 4.
				t.rotateRecolor(w, rotateRightDir, Red, Black)
				rotations++
				w = parent.right
			}

			// Case 4: sibling black, outer nephew red. Rotate toward x's
			// side; w inherits parent's color, parent and w's outer
			// nephew become black. Terminates the walk.
			parentColor := parent.color
			w.right.color = Black
			t.rotateRecolor(parent, rotateLeftDir, Black, parentColor)
			rotations++
			x, parent = t.root, nil
		} else {
			w := parent.left

			if colorOf(w) == Red {
				// Case 1, mirrored.
				t.rotateRecolor(parent, rotateRightDir, Red, Black)
				rotations++
				w = parent.left
			}

			if colorOf(w.right) == Black && colorOf(w.left) == Black {
				// Case 2, mirrored.
				w.color = Red
				x, parent = parent, parent.parent

				continue
			}

			if colorOf(w.left) == Black {
				// Case 3, mirrored.
				t.rotateRecolor(w, rotateLeftDir, Red, Black)
				rotations++
				w = parent.left
			}

			// Case 4, mirrored.
			parentColor := parent.color
			w.left.color = Black
			t.rotateRecolor(parent, rotateRightDir, Black, parentColor)
			rotations++
			x, parent = t.root, nil
		}
	}

	if x != nil {
		x.color = Black
	}

	return walkDepth, rotations
}
