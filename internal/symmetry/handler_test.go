package symmetry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldemailly/ismags/internal/candidate"
	"github.com/ldemailly/ismags/internal/hostgraph"
	"github.com/ldemailly/ismags/internal/linktype"
)

func TestHandlerNarrowsCandidatesUsingSymmetryBounds(t *testing.T) {
	r := linktype.NewRegistry()
	p := r.New(false, "P", "P")

	b := hostgraph.NewBuilder(r.NumLinkIDs())
	n1 := b.GetOrCreateNode("n1")
	n2 := b.GetOrCreateNode("n2")
	n3 := b.GetOrCreateNode("n3")
	require.True(t, b.AddLink(n1, n2, p))
	require.True(t, b.AddLink(n2, n3, p))
	graph := b.Finalize()

	m := singleEdgeMotif(t)

	nodesOfType := graph.NodesOfType(p.Forward)
	it0 := candidate.NewInitial(0)
	it0.AddInitialList(nodesOfType)
	it1 := candidate.NewInitial(1)
	it1.AddInitialList(nodesOfType)

	mappedNodes := make([]*hostgraph.Node, 2)
	h := NewHandler([]*candidate.Iterator{it0, it1}, m, mappedNodes)

	require.True(t, h.Properties.Smaller[0][1])

	mappedNodes[0] = n2
	n2.Used = true
	h.MappedPositions[0] = true

	require.True(t, h.MapNode(0, n2))

	next := h.GetNextBestIterator(map[int]bool{1: true})
	require.NotNil(t, next)
	require.Equal(t, 1, next.MotifNodeID)

	ids := make([]int, 0)
	for _, n := range next.GetNodeSet() {
		ids = append(ids, n.ID)
	}
	require.Equal(t, []int{n3.ID}, ids)

	h.RemoveNodeMapping(0, n2)
	n2.Used = false
}
