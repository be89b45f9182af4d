package hostgraph

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"fortio.org/log"

	"github.com/ldemailly/ismags/internal/linktype"
)

// Builder accumulates nodes and links before Finalize locks in the sorted
// neighbor lists the search engine relies on. It owns the node id
// allocator explicitly, rather than a package-level counter.
type Builder struct {
	graph       *Graph
	numLinkIDs  int
	nextNodeID  int
	departing   map[int]map[*Node]bool
}

func NewBuilder(numLinkIDs int) *Builder {
	return &Builder{
		graph:      newGraph(),
		numLinkIDs: numLinkIDs,
		departing:  make(map[int]map[*Node]bool),
	}
}

// GetOrCreateNode returns the node with the given description, allocating
// a new one (with the next sequential id) if it doesn't exist yet.
func (b *Builder) GetOrCreateNode(description string) *Node {
	if n, ok := b.graph.nodesByDescription[description]; ok {
		return n
	}
	b.nextNodeID++
	n := newNode(b.nextNodeID, description, b.numLinkIDs)
	b.graph.nodesByID[n.ID] = n
	b.graph.nodesByDescription[description] = n
	return n
}

func (b *Builder) departingSet(linkID int) map[*Node]bool {
	s, ok := b.departing[linkID]
	if !ok {
		s = make(map[*Node]bool)
		b.departing[linkID] = s
	}
	return s
}

// AddLink records an edge of the given kind from start to end. Returns
// false if the edge already existed (duplicate edges of the same kind are
// ignored).
func (b *Builder) AddLink(start, end *Node, kind *linktype.Kind) bool {
	forwardList := start.NeighboursByType[kind.Forward]
	for _, n := range forwardList {
		if n == end {
			return false
		}
	}

	b.graph.NumLinks++

	b.departingSet(kind.Forward)[start] = true
	if kind.Directed {
		b.departingSet(kind.Inverse)[end] = true
	} else {
		b.departingSet(kind.Forward)[end] = true
	}

	start.NeighboursByType[kind.Forward] = append(start.NeighboursByType[kind.Forward], end)

	inverseID := kind.Forward
	if kind.Directed {
		inverseID = kind.Inverse
	}
	reverseList := end.NeighboursByType[inverseID]
	found := false
	for _, n := range reverseList {
		if n == start {
			found = true
			break
		}
	}
	if !found {
		end.NeighboursByType[inverseID] = append(end.NeighboursByType[inverseID], start)
	}
	return true
}

// Finalize sorts every neighbor list and per-kind node set and returns the
// completed graph. The builder should not be used afterward.
func (b *Builder) Finalize() *Graph {
	for linkID, set := range b.departing {
		nodes := make([]*Node, 0, len(set))
		for n := range set {
			nodes = append(nodes, n)
		}
		b.graph.byType[linkID] = nodes
	}
	b.graph.finalize()
	return b.graph
}

// LoadFiles reads one tab-separated edge file per link kind (positionally
// zipped) and returns the finalized host graph. Each line is
// "<source>\t<destination>"; lines containing '#' are skipped, as are
// self-loops once the kind's network tags are appended to the raw tokens.
// Duplicate edges of the same kind are ignored.
func LoadFiles(filenames []string, kinds []*linktype.Kind, numLinkIDs int) (*Graph, error) {
	b := NewBuilder(numLinkIDs)
	for i, filename := range filenames {
		kind := kinds[i]
		links := 0
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("opening network file %q: %w", filename, err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			tab := strings.Index(line, "\t")
			if tab <= 0 || strings.Contains(line, "#") {
				continue
			}
			fields := strings.SplitN(line, "\t", 2)
			if len(fields) != 2 {
				continue
			}
			srcToken := strings.TrimRight(fields[0], "\r\n")
			dstToken := strings.TrimRight(fields[1], "\r\n")

			srcDesc := srcToken + kind.SourceNetwork
			dstDesc := dstToken + kind.DestinationNetwork
			if srcDesc == dstDesc {
				continue
			}

			origin := b.GetOrCreateNode(srcDesc)
			destination := b.GetOrCreateNode(dstDesc)

			if b.AddLink(origin, destination, kind) {
				links++
			}
		}
		if err := scanner.Err(); err != nil {
			f.Close()
			return nil, fmt.Errorf("reading network file %q: %w", filename, err)
		}
		f.Close()
		log.Infof("Read: %s | Links: %d", filename, links)
	}

	graph := b.Finalize()
	log.Infof("Number of Nodes: %d", graph.NumNodes())
	log.Infof("Number of Links: %d", graph.NumLinks)
	return graph, nil
}
