package pqueue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPollReturnsSmallestAcrossPositions(t *testing.T) {
	m := NewMap(3)
	m.Add(&Object{FromPosition: 0, ToPosition: 0, NumNeighbors: 5})
	m.Add(&Object{FromPosition: 1, ToPosition: 1, NumNeighbors: 2})
	m.Add(&Object{FromPosition: 2, ToPosition: 2, NumNeighbors: 8})

	best := m.Poll([]int{0, 1, 2})
	require.NotNil(t, best)
	require.Equal(t, 2, best.NumNeighbors)
	require.Equal(t, 1, best.ToPosition)
}

func TestPollSkipsEmptyQueues(t *testing.T) {
	m := NewMap(2)
	m.Add(&Object{FromPosition: 0, ToPosition: 1, NumNeighbors: 9})
	best := m.Poll([]int{0, 1})
	require.NotNil(t, best)
	require.Equal(t, 9, best.NumNeighbors)
}

func TestPollEmptyReturnsNil(t *testing.T) {
	m := NewMap(1)
	require.Nil(t, m.Poll([]int{0}))
}

func TestRemoveMotifNodeRemovesSpecificObject(t *testing.T) {
	m := NewMap(2)
	m.Add(&Object{FromPosition: 0, ToPosition: 1, NumNeighbors: 1})
	m.Add(&Object{FromPosition: 2, ToPosition: 1, NumNeighbors: 5})

	m.RemoveMotifNode(0, 1)
	best := m.Poll([]int{1})
	require.NotNil(t, best)
	require.Equal(t, 5, best.NumNeighbors)

	m.RemoveMotifNode(2, 1)
	require.Nil(t, m.Poll([]int{1}))
}

func TestHeapOrderingAfterRemovals(t *testing.T) {
	m := NewMap(1)
	for i, n := range []int{7, 3, 9, 1, 5} {
		m.Add(&Object{FromPosition: i, ToPosition: 0, NumNeighbors: n})
	}
	m.RemoveMotifNode(3, 0) // remove the n=1 entry
	best := m.Poll([]int{0})
	require.NotNil(t, best)
	require.Equal(t, 3, best.NumNeighbors)
}
