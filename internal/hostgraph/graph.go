package hostgraph

import "sort"

// Graph is a network of nodes connected by typed links.
type Graph struct {
	nodesByID          map[int]*Node
	nodesByDescription map[string]*Node
	byType             map[int][]*Node
	NumLinks           int
}

func newGraph() *Graph {
	return &Graph{
		nodesByID:          make(map[int]*Node),
		nodesByDescription: make(map[string]*Node),
		byType:             make(map[int][]*Node),
	}
}

func (g *Graph) NumNodes() int {
	return len(g.nodesByID)
}

func (g *Graph) NodeByID(id int) (*Node, bool) {
	n, ok := g.nodesByID[id]
	return n, ok
}

func (g *Graph) NodeByDescription(description string) (*Node, bool) {
	n, ok := g.nodesByDescription[description]
	return n, ok
}

// NodesOfType returns, sorted by id, every node with at least one outgoing
// link of the given dense link id.
func (g *Graph) NodesOfType(linkID int) []*Node {
	return g.byType[linkID]
}

func nodeIDLess(nodes []*Node, i, j int) bool {
	return nodes[i].ID < nodes[j].ID
}

func (g *Graph) finalize() {
	for linkID, nodes := range g.byType {
		sorted := append([]*Node(nil), nodes...)
		sort.Slice(sorted, func(i, j int) bool { return nodeIDLess(sorted, i, j) })
		g.byType[linkID] = sorted
	}
	for _, n := range g.nodesByDescription {
		for linkID := range n.NeighboursByType {
			list := n.NeighboursByType[linkID]
			if list == nil {
				continue
			}
			sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		}
	}
}
