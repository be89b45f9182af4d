// Package search implements the backtracking engine that enumerates every
// occurrence of a motif in a host graph exactly once, using the candidate
// iterators and symmetry-breaking constraints from internal/candidate and
// internal/symmetry.
package search

import (
	"sort"
	"time"

	"fortio.org/log"

	"github.com/ldemailly/ismags/internal/candidate"
	"github.com/ldemailly/ismags/internal/hostgraph"
	"github.com/ldemailly/ismags/internal/motif"
	"github.com/ldemailly/ismags/internal/symmetry"
)

// Finder runs the motif search against one host graph.
type Finder struct {
	graph *hostgraph.Graph

	handler       *symmetry.Handler
	unmapped      map[int]bool
	usedLinks     map[motif.LinkPair]bool
	saveLinks     bool
}

func NewFinder(graph *hostgraph.Graph) *Finder {
	return &Finder{graph: graph}
}

// Find returns every instance of m in the host graph, each reported
// exactly once regardless of the automorphisms m has. When saveLinks is
// true, the second return value is every host node pair participating in
// at least one discovered instance.
func (f *Finder) Find(m *motif.Motif, saveLinks bool) ([]motif.Instance, []motif.LinkPair) {
	log.Infof("Performing motif search...")
	start := time.Now()

	f.unmapped = make(map[int]bool, m.NumNodes)
	for i := 0; i < m.NumNodes; i++ {
		f.unmapped[i] = true
	}

	mapping := make([]*candidate.Iterator, m.NumNodes)
	mappedNodes := make([]*hostgraph.Node, m.NumNodes)

	bestMotifNode := -1
	sizeOfBest := int(^uint(0) >> 1)

	for i := 0; i < m.NumNodes; i++ {
		iter := candidate.NewInitial(i)
		seen := make(map[int]bool)
		smallest := int(^uint(0) >> 1)

		links := m.Links[i]
		for _, link := range links {
			if seen[link.LinkID] {
				continue
			}
			seen[link.LinkID] = true
			nodesOfType := f.graph.NodesOfType(link.LinkID)
			iter.AddInitialList(nodesOfType)
			if len(nodesOfType) < smallest {
				smallest = len(nodesOfType)
			}
		}

		if smallest < sizeOfBest {
			sizeOfBest = smallest
			bestMotifNode = i
		}
		mapping[i] = iter
	}

	f.handler = symmetry.NewHandler(mapping, m, mappedNodes)
	f.saveLinks = saveLinks
	if saveLinks {
		f.usedLinks = make(map[motif.LinkPair]bool)
	}

	var instances []motif.Instance
	f.mapNext(m, &instances, bestMotifNode, mappedNodes, 0)

	log.Infof("Completed motif search in %v", time.Since(start))
	log.Infof("Found %d instances of %s motif", len(instances), m.Description)

	var links []motif.LinkPair
	if saveLinks {
		for l := range f.usedLinks {
			links = append(links, l)
		}
		sort.Slice(links, func(i, j int) bool {
			if links[i][0].ID != links[j][0].ID {
				return links[i][0].ID < links[j][0].ID
			}
			return links[i][1].ID < links[j][1].ID
		})
	}
	return instances, links
}

func (f *Finder) recordUsedLinks(m *motif.Motif, mappedNodes []*hostgraph.Node, motifNode int) {
	links := m.Conn[motifNode]
	for _, j := range links {
		if mappedNodes[j] == nil {
			continue
		}
		f.usedLinks[motif.NewLinkPair(mappedNodes[motifNode], mappedNodes[j])] = true
	}
}

// mapNext recursively maps host graph nodes onto motifNode and, once
// every motif node has a mapping, records an instance (undoing the
// mapping on the way back out so the search can continue from the same
// partial state).
func (f *Finder) mapNext(m *motif.Motif, instances *[]motif.Instance, motifNode int, mappedNodes []*hostgraph.Node, numberMapped int) {
	nodes := f.handler.Mapping[motifNode].GetNodeSet()

	if numberMapped == m.NumNodes-1 {
		if f.saveLinks && len(nodes) > 0 {
			for i := 0; i < m.NumNodes; i++ {
				if mappedNodes[i] == nil {
					continue
				}
				conn := m.Conn[i]
				for _, j := range conn {
					if mappedNodes[j] == nil {
						continue
					}
					if j > i {
						break
					}
					f.usedLinks[motif.NewLinkPair(mappedNodes[i], mappedNodes[j])] = true
				}
			}
		}

		for _, node := range nodes {
			mappedNodes[motifNode] = node
			*instances = append(*instances, motif.NewInstance(mappedNodes))
			if f.saveLinks {
				f.recordUsedLinks(m, mappedNodes, motifNode)
			}
		}
		mappedNodes[motifNode] = nil
		return
	}

	f.handler.MappedPositions[motifNode] = true
	delete(f.unmapped, motifNode)

	for _, node := range nodes {
		mappedNodes[motifNode] = node
		node.Used = true

		if f.handler.MapNode(motifNode, node) {
			next := f.handler.GetNextBestIterator(f.unmapped)
			if next != nil {
				f.handler.Mapping[next.MotifNodeID] = next
				f.mapNext(m, instances, next.MotifNodeID, mappedNodes, numberMapped+1)
				f.handler.Mapping[next.MotifNodeID] = next.Parent()
			}
		}

		f.handler.RemoveNodeMapping(motifNode, node)
		node.Used = false
		mappedNodes[motifNode] = nil
	}

	delete(f.handler.MappedPositions, motifNode)
	f.unmapped[motifNode] = true
}
