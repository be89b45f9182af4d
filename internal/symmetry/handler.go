package symmetry

import (
	"sort"

	"github.com/ldemailly/ismags/internal/candidate"
	"github.com/ldemailly/ismags/internal/hostgraph"
	"github.com/ldemailly/ismags/internal/motif"
	"github.com/ldemailly/ismags/internal/pqueue"
)

// Handler ties a motif's symmetry properties to the live search state: it
// decides which unmapped motif node to try next and keeps the candidate
// iterators' restriction stacks consistent as nodes are mapped and
// unmapped.
type Handler struct {
	Mapping      []*candidate.Iterator
	MappedNodes  []*hostgraph.Node
	motif        *motif.Motif
	pq           *pqueue.Map
	MappedPositions map[int]bool
	Properties   *Properties
}

func NewHandler(mapping []*candidate.Iterator, m *motif.Motif, mappedNodes []*hostgraph.Node) *Handler {
	h := &Handler{
		Mapping:         mapping,
		MappedNodes:     mappedNodes,
		motif:           m,
		pq:              pqueue.NewMap(len(mapping)),
		MappedPositions: make(map[int]bool),
	}
	h.Properties = Analyze(m)
	return h
}

// GetNextBestIterator picks, among unmappedMotifNodes, the one with the
// smallest pending candidate list, and intersects that list against the
// id bounds implied by the symmetry-breaking order constraints already
// satisfied by the current partial mapping.
func (h *Handler) GetNextBestIterator(unmappedMotifNodes map[int]bool) *candidate.Iterator {
	positions := make([]int, 0, len(unmappedMotifNodes))
	for p := range unmappedMotifNodes {
		positions = append(positions, p)
	}
	// Sorted so ties on NumNeighbors always resolve to the lowest position.
	sort.Ints(positions)
	poll := h.pq.Poll(positions)
	if poll == nil {
		return nil
	}
	motifNodeID := poll.ToPosition
	iter := h.Mapping[motifNodeID]

	var minNode, maxNode *hostgraph.Node
	minValue := -(int(^uint(0)>>1)) - 1
	maxValue := int(^uint(0) >> 1)

	if set, ok := h.Properties.Larger[motifNodeID]; ok {
		for pos := range set {
			if h.MappedPositions[pos] && minValue < h.MappedNodes[pos].ID {
				minValue = h.MappedNodes[pos].ID
				minNode = h.MappedNodes[pos]
			}
		}
	}

	// Deliberately guards on Smaller here, not Larger again: an earlier
	// version of this bound guarded on the wrong set, so it silently
	// skipped narrowing maxValue whenever motifNodeID had no Larger
	// entry of its own.
	if set, ok := h.Properties.Smaller[motifNodeID]; ok {
		for pos := range set {
			if h.MappedPositions[pos] && maxValue > h.MappedNodes[pos].ID {
				maxValue = h.MappedNodes[pos].ID
				maxNode = h.MappedNodes[pos]
				if minValue > maxValue {
					return nil
				}
			}
		}
	}

	result := iter.Intersect(minNode, maxNode)
	if result == nil {
		return nil
	}
	return result
}

// MapNode binds graphNode to motifNode and pushes the resulting
// restriction onto every motif node motifNode connects to that isn't
// mapped yet. Returns false if graphNode can't support one of motifNode's
// required link kinds.
func (h *Handler) MapNode(motifNode int, graphNode *hostgraph.Node) bool {
	conn := h.motif.Conn[motifNode]
	links := h.motif.Links[motifNode]

	for idx, connection := range conn {
		if h.MappedNodes[connection] != nil {
			continue
		}
		link := links[idx]
		neighborList := graphNode.NeighboursByType[link.LinkID]
		if neighborList == nil {
			return false
		}
		h.Mapping[connection].AddRestrictionList(neighborList, graphNode)
		h.pq.Add(&pqueue.Object{
			StartNode:    graphNode,
			FromPosition: motifNode,
			ToPosition:   connection,
			NumNeighbors: len(neighborList),
		})
	}
	return true
}

// RemoveNodeMapping undoes MapNode's effect on motifNode's neighbors.
func (h *Handler) RemoveNodeMapping(motifNode int, graphNode *hostgraph.Node) {
	for _, i := range h.motif.Conn[motifNode] {
		h.Mapping[i].RemoveRestrictionList(graphNode)
		h.pq.RemoveMotifNode(motifNode, i)
	}
}
