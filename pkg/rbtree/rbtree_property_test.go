package rbtree_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redblack-systems/rbtree/pkg/rbtree"
)

func TestEmptyTreeBoundaries(t *testing.T) {
	t.Parallel()

	tree := &rbtree.Tree{}
	assert.True(t, tree.Empty())
	assert.Nil(t, tree.First())
	assert.Nil(t, tree.Last())
	require.NoError(t, tree.Verify())
}

func TestInsertIntoEmptyTreeYieldsBlackRoot(t *testing.T) {
	t.Parallel()

	tree := &rbtree.Tree{}
	insertKey(tree, 42)

	assert.False(t, tree.Empty())
	assert.Equal(t, rbtree.Black, tree.Root().Color())
	assert.Nil(t, tree.Root().Parent())
}

func TestEraseOnlyNodeYieldsEmptyTree(t *testing.T) {
	t.Parallel()

	tree := &rbtree.Tree{}
	insertKey(tree, 1)
	require.True(t, eraseKey(tree, 1))

	assert.True(t, tree.Empty())
	require.NoError(t, tree.Verify())
}

// TestEraseCase2PropagatesToRoot builds a tree whose shape forces the
// "sibling black, both nephews black" erase fixup case to walk all the way
// to the root, absorbing the deficit there.
func TestEraseCase2PropagatesToRoot(t *testing.T) {
	t.Parallel()

	tree := &rbtree.Tree{}
	for _, key := range []int{2, 1, 3, 4} {
		insertKey(tree, key)
	}

	// Erasing the red leaf 4 leaves a black root with two black leaves, so
	// erasing 1 next finds a black sibling with no red nephews.
	require.True(t, eraseKey(tree, 4))
	require.NoError(t, tree.Verify())

	require.True(t, eraseKey(tree, 1))
	require.NoError(t, tree.Verify())
	assert.Equal(t, []int{2, 3}, inorderKeys(tree))
}

func TestLongChainOfCase1InsertFixups(t *testing.T) {
	t.Parallel()

	tree := &rbtree.Tree{}

	const levels = 12

	for i := 0; i < levels; i++ {
		insertKey(tree, 2*i)
		insertKey(tree, 2*i+1)
		require.NoError(t, tree.Verify())
	}

	assert.Equal(t, 2*levels, countNodes(tree.Root()))
}

func TestReplacePreservesInorderSequence(t *testing.T) {
	t.Parallel()

	tree := &rbtree.Tree{}
	for _, key := range []int{5, 3, 8, 1, 4} {
		insertKey(tree, key)
	}

	before := inorderKeys(tree)

	victim := findNode(tree, 4)
	require.NotNil(t, victim)

	replacement := &item{key: 4}
	tree.Replace(victim, &replacement.Node)

	assert.Equal(t, before, inorderKeys(tree))
	assert.Same(t, &replacement.Node, findNode(tree, 4))
}

// oracle mirrors the tree's expected contents with a plain map, so
// randomized operations can be checked against ground truth independent of
// the tree's own logic.
type oracle struct {
	keys map[int]bool
}

func newOracle() *oracle { return &oracle{keys: map[int]bool{}} }

func (o *oracle) insert(key int)   { o.keys[key] = true }
func (o *oracle) delete(key int)   { delete(o.keys, key) }
func (o *oracle) has(key int) bool { return o.keys[key] }
func (o *oracle) len() int         { return len(o.keys) }

func (o *oracle) sorted() []int {
	out := make([]int, 0, len(o.keys))
	for k := range o.keys {
		out = append(out, k)
	}

	sort.Ints(out)

	return out
}

func (o *oracle) randomExistingKey(rng *rand.Rand) int {
	target := rng.Intn(len(o.keys))

	for _, k := range o.sorted() {
		if target == 0 {
			return k
		}

		target--
	}

	panic("unreachable")
}

// TestRandomizedInsertDeleteSequence exercises 10,000 random insert/erase
// operations over a 1,000-key universe, verifying all tree invariants and
// cross-checking against an independent oracle every 100 operations.
func TestRandomizedInsertDeleteSequence(t *testing.T) {
	t.Parallel()

	const (
		numKeys = 1000
		numOps  = 10000
	)

	orc := newOracle()
	tree := &rbtree.Tree{}
	rng := rand.New(rand.NewSource(1))

	for op := 0; op < numOps; op++ {
		if orc.len() == 0 || rng.Intn(2) == 0 {
			key := rng.Intn(numKeys)
			if !orc.has(key) {
				orc.insert(key)
				insertKey(tree, key)
			}
		} else {
			key := orc.randomExistingKey(rng)
			orc.delete(key)
			require.True(t, eraseKey(tree, key))
		}

		if op%100 == 0 {
			require.NoError(t, tree.Verify())
			assert.Equal(t, orc.len(), countNodes(tree.Root()))
			assert.Equal(t, orc.sorted(), inorderKeys(tree))
		}
	}

	require.NoError(t, tree.Verify())
	assert.Equal(t, orc.sorted(), inorderKeys(tree))

	for _, key := range orc.sorted() {
		require.True(t, eraseKey(tree, key))
	}

	assert.True(t, tree.Empty())
}

func TestInsertPermutationThenEraseEmptiesTree(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	keys := rng.Perm(500)

	tree := &rbtree.Tree{}
	for _, key := range keys {
		insertKey(tree, key)
	}

	require.NoError(t, tree.Verify())
	assert.Equal(t, len(keys), countNodes(tree.Root()))

	erasureOrder := rng.Perm(len(keys))
	for _, idx := range erasureOrder {
		require.True(t, eraseKey(tree, keys[idx]))
	}

	assert.True(t, tree.Empty())
	require.NoError(t, tree.Verify())
}
