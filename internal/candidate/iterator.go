// Package candidate implements the per-motif-node candidate list: a stack
// of neighbor-list restrictions pushed as other motif nodes get mapped,
// intersected lazily to produce the next node to try.
package candidate

import (
	"math"
	"sort"

	"github.com/ldemailly/ismags/internal/hostgraph"
)

// Iterator tracks every list of host nodes that must be intersected to get
// the current candidates for one motif node.
type Iterator struct {
	nodes       []*hostgraph.Node // already-computed result, nil if lazy
	parent      *Iterator
	MotifNodeID int
	minSetSize  int

	neighborLists []restriction // stack
	initialLists  [][]*hostgraph.Node
}

type restriction struct {
	list  []*hostgraph.Node
	cause *hostgraph.Node
}

// NewInitial creates the iterator for a motif node before any graph node
// has been mapped onto it.
func NewInitial(motifNodeID int) *Iterator {
	return &Iterator{MotifNodeID: motifNodeID, minSetSize: math.MaxInt}
}

func newChild(nodes []*hostgraph.Node, parent *Iterator) *Iterator {
	return &Iterator{
		nodes:       nodes,
		parent:      parent,
		MotifNodeID: parent.MotifNodeID,
		minSetSize:  len(nodes),
	}
}

// Parent returns the iterator this one was intersected from, for
// restoring the mapping chain when backtracking.
func (it *Iterator) Parent() *Iterator { return it.parent }

// AddInitialList registers one of the unconstrained candidate lists
// established before search begins (one per outgoing edge type of the
// motif node).
func (it *Iterator) AddInitialList(list []*hostgraph.Node) {
	if len(list) < it.minSetSize {
		it.initialLists = append([][]*hostgraph.Node{list}, it.initialLists...)
		it.minSetSize = len(list)
	} else {
		it.initialLists = append(it.initialLists, list)
	}
}

// AddRestrictionList pushes a neighbor list onto the restriction stack,
// caused by mapping cause onto some other motif node.
func (it *Iterator) AddRestrictionList(list []*hostgraph.Node, cause *hostgraph.Node) {
	for _, r := range it.neighborLists {
		if sameSlice(r.list, list) {
			return
		}
	}
	it.neighborLists = append(it.neighborLists, restriction{list: list, cause: cause})
	if len(list) < it.minSetSize {
		it.minSetSize = len(list)
	}
}

func sameSlice(a, b []*hostgraph.Node) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	return &a[0] == &b[0]
}

// RemoveRestrictionList pops restrictions caused by the given node, most
// recently pushed first, matching the stack discipline backtracking
// relies on.
func (it *Iterator) RemoveRestrictionList(cause *hostgraph.Node) {
	for len(it.neighborLists) > 0 && it.neighborLists[len(it.neighborLists)-1].cause.ID == cause.ID {
		it.neighborLists = it.neighborLists[:len(it.neighborLists)-1]
	}
}

// GetNodeSet returns the candidate host nodes for this motif node. If this
// iterator already holds a computed result, that's returned directly;
// otherwise the initial lists are intersected (always intersected, never
// unioned, regardless of how many there are).
func (it *Iterator) GetNodeSet() []*hostgraph.Node {
	if it.nodes != nil {
		return it.nodes
	}
	switch len(it.initialLists) {
	case 0:
		return nil
	case 1:
		return it.initialLists[0]
	default:
		return intersectSorted(it.initialLists)
	}
}

// intersectSorted intersects N id-sorted slices via successive two-way
// merges, starting from the smallest list to minimize work.
func intersectSorted(lists [][]*hostgraph.Node) []*hostgraph.Node {
	ordered := append([][]*hostgraph.Node(nil), lists...)
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) < len(ordered[j]) })

	result := ordered[0]
	for _, other := range ordered[1:] {
		if len(result) == 0 {
			return nil
		}
		result = intersectPair(result, other)
	}
	return result
}

func intersectPair(a, b []*hostgraph.Node) []*hostgraph.Node {
	out := make([]*hostgraph.Node, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].ID == b[j].ID:
			out = append(out, a[i])
			i++
			j++
		case a[i].ID < b[j].ID:
			i++
		default:
			j++
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// nodeIndex binary-searches list (sorted by id) for target, reporting both
// the insertion position and whether target was found there.
func nodeIndex(list []*hostgraph.Node, target *hostgraph.Node) (pos int, found bool) {
	idx := sort.Search(len(list), func(i int) bool { return list[i].ID >= target.ID })
	if idx < len(list) && list[idx].ID == target.ID {
		return idx, true
	}
	return idx, false
}

// Intersect produces the child iterator for this motif node's candidates,
// bounded below by minimum's id (exclusive) and above by maximum's id
// (exclusive), skipping already-used host nodes and any not present in
// every other pushed restriction list.
func (it *Iterator) Intersect(minimum, maximum *hostgraph.Node) *Iterator {
	if len(it.neighborLists) == 0 {
		return nil
	}

	smallestIdx := len(it.neighborLists) - 1
	smallest := it.neighborLists[smallestIdx].list
	if len(smallest) > it.minSetSize {
		for i := 0; i < len(it.neighborLists)-1; i++ {
			cand := it.neighborLists[i].list
			if len(cand) < it.minSetSize {
				smallest = cand
				it.minSetSize = len(cand)
				smallestIdx = i
			}
		}
	}

	start := 0
	if minimum != nil {
		p, found := nodeIndex(smallest, minimum)
		if found {
			start = p + 1
		} else {
			start = p
		}
	}
	end := len(smallest)
	if maximum != nil {
		p, found := nodeIndex(smallest, maximum)
		if found {
			end = p
		} else {
			end = p
		}
	}
	if start > end {
		start = end
	}

	var result []*hostgraph.Node
	for _, node := range smallest[start:end] {
		if node.Used {
			continue
		}
		ok := true
		for i, r := range it.neighborLists {
			if i == smallestIdx {
				continue
			}
			if _, found := nodeIndex(r.list, node); !found {
				ok = false
				break
			}
		}
		if ok {
			result = append(result, node)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return newChild(result, it)
}
