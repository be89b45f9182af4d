// Package pqueue implements the indexed priority-queue-per-motif-node map
// the symmetry handler uses to pick which motif node to map next: the one
// whose current candidate list is smallest.
package pqueue

import (
	"container/heap"

	"github.com/ldemailly/ismags/internal/hostgraph"
)

// Object records that mapping motif node FromPosition forced a restriction
// onto motif node ToPosition's candidate list, of size NumNeighbors.
type Object struct {
	StartNode    *hostgraph.Node
	FromPosition int
	ToPosition   int
	NumNeighbors int

	index int // maintained by container/heap, needed for Remove
}

// innerHeap is a min-heap on NumNeighbors. Each Object tracks its own heap
// index, so queue (which maps FromPosition to Object) can remove a specific
// object without scanning.
type innerHeap struct {
	items []*Object
}

func (h *innerHeap) Len() int { return len(h.items) }
func (h *innerHeap) Less(i, j int) bool {
	return h.items[i].NumNeighbors < h.items[j].NumNeighbors
}
func (h *innerHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}
func (h *innerHeap) Push(x any) {
	obj := x.(*Object)
	obj.index = len(h.items)
	h.items = append(h.items, obj)
}
func (h *innerHeap) Pop() any {
	old := h.items
	n := len(old)
	obj := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	obj.index = -1
	return obj
}

type queue struct {
	h          innerHeap
	byFromNode map[int]*Object
}

func newQueue() *queue {
	return &queue{byFromNode: make(map[int]*Object)}
}

func (q *queue) add(obj *Object) {
	heap.Push(&q.h, obj)
	q.byFromNode[obj.FromPosition] = obj
}

func (q *queue) peek() *Object {
	if len(q.h.items) == 0 {
		return nil
	}
	return q.h.items[0]
}

func (q *queue) removeObject(obj *Object) {
	if obj.index < 0 || obj.index >= len(q.h.items) || q.h.items[obj.index] != obj {
		return
	}
	heap.Remove(&q.h, obj.index)
}

func (q *queue) removeFromNode(fromPosition int) {
	obj, ok := q.byFromNode[fromPosition]
	if !ok {
		return
	}
	delete(q.byFromNode, fromPosition)
	q.removeObject(obj)
}

// Map is one queue per motif node position, the Go analogue of
// PriorityQueueMap.
type Map struct {
	queues []*queue
}

func NewMap(size int) *Map {
	m := &Map{queues: make([]*queue, size)}
	for i := range m.queues {
		m.queues[i] = newQueue()
	}
	return m
}

func (m *Map) Add(obj *Object) {
	m.queues[obj.ToPosition].add(obj)
}

// Poll peeks across the given motif node positions and returns the
// object with the smallest NumNeighbors, without removing it.
func (m *Map) Poll(positions []int) *Object {
	if len(positions) == 0 {
		return nil
	}
	var best *Object
	bestScore := int(^uint(0) >> 1) // max int
	for _, pos := range positions {
		obj := m.queues[pos].peek()
		if obj == nil {
			continue
		}
		if obj.NumNeighbors < bestScore {
			bestScore = obj.NumNeighbors
			best = obj
		}
	}
	return best
}

// RemoveMotifNode removes, from the queue at position i, the object that
// was pushed there because of a restriction from motifNode.
func (m *Map) RemoveMotifNode(motifNode, i int) {
	m.queues[i].removeFromNode(motifNode)
}
