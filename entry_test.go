package skiplist

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntryOutlivesRemoval(t *testing.T) {
	l := New[int, string]()
	e := l.Insert(1, "one")

	re := l.Remove(1)
	require.NotNil(t, re)
	re.Release()
	l.Clear()

	// The node is gone from the list but the handle keeps it readable.
	require.True(t, e.IsRemoved())
	require.Equal(t, 1, e.Key())
	require.Equal(t, "one", e.Value())
	e.Release()
}

func TestReleasedNodesAreFinalized(t *testing.T) {
	var allocated, finalized atomic.Int64
	nodeAllocHook = func(int) { allocated.Add(1) }
	nodeFinalizeHook = func(any, any) { finalized.Add(1) }
	defer func() {
		nodeAllocHook = nil
		nodeFinalizeHook = nil
	}()

	l := New[int, int]()

	const total = 64
	entries := make([]*Entry[int, int], 0, total)
	for i := 0; i < total; i++ {
		entries = append(entries, l.Insert(i, i))
	}
	require.Equal(t, int64(total), allocated.Load())

	for i := 0; i < total; i++ {
		re := l.Remove(i)
		require.NotNil(t, re)
		re.Release()
	}
	require.Less(t, finalized.Load(), allocated.Load(),
		"insert handles still hold references")

	for _, e := range entries {
		e.Release()
	}
	require.Equal(t, allocated.Load(), finalized.Load(),
		"every allocation must be finalized once the last reference is gone")
}

func TestUpsertFinalizesReplacedNode(t *testing.T) {
	var finalized atomic.Int64
	nodeFinalizeHook = func(any, any) { finalized.Add(1) }
	defer func() { nodeFinalizeHook = nil }()

	l := New[int, int]()
	for i := 0; i < 10; i++ {
		l.Insert(1, i).Release()
	}

	// Nine replaced nodes have been unlinked and released.
	require.Equal(t, int64(9), finalized.Load())
	require.Equal(t, 1, l.Len())
}

func TestEntryClone(t *testing.T) {
	l := New[int, string]()
	e := l.Insert(1, "one")
	c := e.Clone()

	e.Release()
	require.Equal(t, 1, c.Key())
	require.Equal(t, "one", c.Value())
	c.Release()

	// The node is still linked, so it stays alive regardless of handles.
	require.True(t, l.Contains(1))
}

func TestEntryNextPrev(t *testing.T) {
	l := New[int, int]()
	for _, k := range []int{1, 3, 5} {
		l.Insert(k, k).Release()
	}

	e := l.Front()
	require.Equal(t, 1, e.Key())

	n := e.Next()
	require.Equal(t, 3, n.Key())

	p := n.Prev()
	require.Equal(t, 1, p.Key())
	p.Release()

	require.Nil(t, l.Back().Next())
	e.Release()
	n.Release()
}

func TestEntryNextSkipsRemoved(t *testing.T) {
	l := New[int, int]()
	for _, k := range []int{1, 2, 3} {
		l.Insert(k, k).Release()
	}

	e := l.Front()
	l.Remove(2).Release()

	n := e.Next()
	require.Equal(t, 3, n.Key())
	n.Release()
	e.Release()
}

func TestEntryMoveNextMovePrev(t *testing.T) {
	l := New[int, int]()
	for _, k := range []int{1, 2, 3} {
		l.Insert(k, k).Release()
	}

	e := l.Front()
	var forward []int
	forward = append(forward, e.Key())
	for e.MoveNext() {
		forward = append(forward, e.Key())
	}
	require.Equal(t, []int{1, 2, 3}, forward)

	// The entry stays on the last element after a failed move.
	require.Equal(t, 3, e.Key())

	var backward []int
	for e.MovePrev() {
		backward = append(backward, e.Key())
	}
	require.Equal(t, []int{2, 1}, backward)
	e.Release()
}

func TestEntryRemoveReportsWinner(t *testing.T) {
	l := New[int, int]()
	e := l.Insert(1, 1)

	require.True(t, e.Remove())
	require.False(t, e.Remove(), "second removal must lose")
	require.Equal(t, 0, l.Len())

	e.Release()
}

// Back's Next must return nil without leaking an acquired reference.
func TestBackHasNoSuccessor(t *testing.T) {
	l := New[int, int]()
	l.Insert(1, 1).Release()

	b := l.Back()
	require.Nil(t, b.Next())
	require.Nil(t, l.Front().Prev())
	b.Release()
}
