package runqueue_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redblack-systems/rbtree/pkg/runqueue"
)

func TestDequeueEmptyQueue(t *testing.T) {
	t.Parallel()

	var q runqueue.Queue
	assert.Nil(t, q.Dequeue())
	assert.Nil(t, q.Next())
}

func TestDequeueOrdersByVruntime(t *testing.T) {
	t.Parallel()

	var q runqueue.Queue

	entries := make([]*runqueue.Entry, 5)
	vruntimes := []uint64{30, 10, 50, 20, 40}

	for i, vt := range vruntimes {
		entries[i] = &runqueue.Entry{}
		q.Enqueue(entries[i], vt, uint64(i))
	}

	require.Equal(t, 5, q.Len())

	var got []uint64
	for q.Len() > 0 {
		e := q.Dequeue()
		require.NotNil(t, e)
		got = append(got, e.Vruntime())
	}

	assert.Equal(t, []uint64{10, 20, 30, 40, 50}, got)
}

func TestEqualVruntimeBreaksTieByID(t *testing.T) {
	t.Parallel()

	var q runqueue.Queue

	a, b, c := &runqueue.Entry{}, &runqueue.Entry{}, &runqueue.Entry{}
	q.Enqueue(c, 5, 3)
	q.Enqueue(a, 5, 1)
	q.Enqueue(b, 5, 2)

	assert.Equal(t, uint64(1), q.Dequeue().ID())
	assert.Equal(t, uint64(2), q.Dequeue().ID())
	assert.Equal(t, uint64(3), q.Dequeue().ID())
}

func TestRemoveAheadOfTurn(t *testing.T) {
	t.Parallel()

	var q runqueue.Queue

	a, b := &runqueue.Entry{}, &runqueue.Entry{}
	q.Enqueue(a, 1, 1)
	q.Enqueue(b, 2, 2)

	assert.True(t, q.Remove(b))
	assert.False(t, q.Remove(b))
	assert.Equal(t, 1, q.Len())

	assert.Equal(t, uint64(1), q.Dequeue().ID())
}

func TestRescheduleMovesEntryToNewPosition(t *testing.T) {
	t.Parallel()

	var q runqueue.Queue

	a, b := &runqueue.Entry{}, &runqueue.Entry{}
	q.Enqueue(a, 1, 1)
	q.Enqueue(b, 2, 2)

	q.Reschedule(a, 100)

	assert.Equal(t, uint64(2), q.Next().ID())

	q.Dequeue()

	next := q.Dequeue()
	require.NotNil(t, next)
	assert.Equal(t, uint64(1), next.ID())
	assert.Equal(t, uint64(100), next.Vruntime())
}

func TestRandomizedScheduleAgainstOracle(t *testing.T) {
	t.Parallel()

	const numEntries = 200

	var q runqueue.Queue

	entries := make([]*runqueue.Entry, numEntries)
	rng := rand.New(rand.NewSource(3))

	for i := range entries {
		entries[i] = &runqueue.Entry{}
		q.Enqueue(entries[i], uint64(rng.Intn(1000)), uint64(i))
	}

	var last uint64

	first := true

	for q.Len() > 0 {
		e := q.Dequeue()
		require.NotNil(t, e)

		if !first {
			assert.GreaterOrEqual(t, e.Vruntime(), last)
		}

		last = e.Vruntime()
		first = false
	}
}
