package candidate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldemailly/ismags/internal/hostgraph"
	"github.com/ldemailly/ismags/internal/linktype"
)

func makeNodes(t *testing.T, ids ...int) []*hostgraph.Node {
	t.Helper()
	r := linktype.NewRegistry()
	r.New(false, "P", "P")
	b := hostgraph.NewBuilder(r.NumLinkIDs())
	nodes := make([]*hostgraph.Node, len(ids))
	for i, id := range ids {
		n := b.GetOrCreateNode(string(rune('a' + id)))
		nodes[i] = n
	}
	return nodes
}

func TestGetNodeSetSingleInitialList(t *testing.T) {
	nodes := makeNodes(t, 0, 1, 2)
	it := NewInitial(0)
	it.AddInitialList(nodes)
	require.Equal(t, nodes, it.GetNodeSet())
}

func TestGetNodeSetIntersectsMultipleInitialLists(t *testing.T) {
	nodes := makeNodes(t, 0, 1, 2, 3, 4)
	listA := []*hostgraph.Node{nodes[0], nodes[1], nodes[2]}
	listB := []*hostgraph.Node{nodes[1], nodes[2], nodes[3]}
	listC := []*hostgraph.Node{nodes[1], nodes[3], nodes[4]}

	it := NewInitial(0)
	it.AddInitialList(listA)
	it.AddInitialList(listB)
	it.AddInitialList(listC)

	result := it.GetNodeSet()
	require.Len(t, result, 1)
	require.Equal(t, nodes[1], result[0])
}

func TestGetNodeSetEmptyIntersectionNeverFallsBackToUnion(t *testing.T) {
	nodes := makeNodes(t, 0, 1, 2, 3)
	listA := []*hostgraph.Node{nodes[0], nodes[1]}
	listB := []*hostgraph.Node{nodes[2], nodes[3]}

	it := NewInitial(0)
	it.AddInitialList(listA)
	it.AddInitialList(listB)

	require.Empty(t, it.GetNodeSet())
}

func TestIntersectBoundsAndUsedFilter(t *testing.T) {
	nodes := makeNodes(t, 0, 1, 2, 3, 4)

	it := NewInitial(0)
	it.AddRestrictionList(nodes, nodes[0])
	nodes[2].Used = true

	result := it.Intersect(nil, nil)
	require.NotNil(t, result)
	ids := idsOf(result.GetNodeSet())
	require.Equal(t, []int{nodes[0].ID, nodes[1].ID, nodes[3].ID, nodes[4].ID}, ids)

	result = it.Intersect(nodes[1], nodes[4])
	require.NotNil(t, result)
	ids = idsOf(result.GetNodeSet())
	require.Equal(t, []int{nodes[3].ID}, ids)
}

func TestIntersectNoNeighborListsReturnsNil(t *testing.T) {
	it := NewInitial(0)
	require.Nil(t, it.Intersect(nil, nil))
}

func idsOf(nodes []*hostgraph.Node) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}
