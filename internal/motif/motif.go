// Package motif parses the fixed-width motif description grammar into a
// Motif, and writes discovered instances back out.
package motif

import (
	"fmt"
	"math"

	"github.com/ldemailly/ismags/internal/linktype"
)

// Link is an edge within the motif, naming the kind and which dense link
// id (forward or inverse) traversing it in this direction corresponds to.
type Link struct {
	Kind   *linktype.Kind
	LinkID int
}

// Motif is the pattern being searched for. Conn/Links are the compacted,
// finalized adjacency: Conn[i][k] is the k'th neighbor of motif node i,
// and Links[i][k] is the edge used to reach it.
type Motif struct {
	NumNodes    int
	Description string

	matrix [][]*Link // full adjacency, kept for serialization
	Conn   [][]int
	Links  [][]*Link

	LinkKindIDs map[int]bool
	kindChar    map[int]byte
}

type builder struct {
	m                 *Motif
	initialConnections map[int][]int
}

func newBuilder(numNodes int) *builder {
	m := &Motif{
		NumNodes:    numNodes,
		matrix:      make([][]*Link, numNodes),
		LinkKindIDs: make(map[int]bool),
		kindChar:    make(map[int]byte),
	}
	for i := range m.matrix {
		m.matrix[i] = make([]*Link, numNodes)
	}
	return &builder{m: m, initialConnections: make(map[int][]int)}
}

func (b *builder) addLink(start, end int, kind *linktype.Kind, ch byte) {
	b.m.matrix[start][end] = &Link{Kind: kind, LinkID: kind.Forward}
	b.m.matrix[end][start] = &Link{Kind: kind, LinkID: kind.Inverse}

	b.initialConnections[start] = append(b.initialConnections[start], end)
	b.initialConnections[end] = append(b.initialConnections[end], start)

	b.m.LinkKindIDs[kind.ID] = true
	if _, ok := b.m.kindChar[kind.ID]; !ok {
		b.m.kindChar[kind.ID] = ch
	}
}

func (b *builder) finalize() *Motif {
	m := b.m
	m.Conn = make([][]int, m.NumNodes)
	m.Links = make([][]*Link, m.NumNodes)
	for i := 0; i < m.NumNodes; i++ {
		conn := b.initialConnections[i]
		m.Conn[i] = append([]int(nil), conn...)
		links := make([]*Link, len(conn))
		for k, j := range conn {
			links[k] = m.matrix[i][j]
		}
		m.Links[i] = links
	}
	return m
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// ParseDescription parses a lower-triangular adjacency string (§6's
// grammar: length L = n(n-1)/2 for n = ceil(sqrt(2L)), uppercase = edge
// j->i, lowercase = edge i->j, '0' = no edge) into a Motif. translation
// maps the uppercase form of a description character to the link kind it
// names; undirected kinds ignore the character's case.
func ParseDescription(description string, translation map[byte]*linktype.Kind) (*Motif, error) {
	length := len(description)
	numNodes := int(math.Ceil(math.Sqrt(2 * float64(length))))
	if length != numNodes*(numNodes-1)/2 {
		return nil, fmt.Errorf("motif description %q has invalid length", description)
	}

	b := newBuilder(numNodes)
	counter := 0
	for i := 1; i < numNodes; i++ {
		for j := 0; j < i; j++ {
			ch := description[counter]
			counter++
			if ch == '0' {
				continue
			}
			kind, ok := translation[upper(ch)]
			if !ok {
				return nil, fmt.Errorf("motif description %q uses unknown link type %q", description, string(ch))
			}
			if isUpper(ch) {
				b.addLink(j, i, kind, upper(ch))
			} else {
				b.addLink(i, j, kind, upper(ch))
			}
		}
	}

	m := b.finalize()
	m.Description = description
	return m, nil
}

// Serialize reconstructs the description string from the motif's
// adjacency, independent of the original input string. For directed kinds
// it is the inverse of ParseDescription. Undirected kinds keep no case in
// the adjacency (Forward == Inverse), so their characters are always
// written uppercase: a lowercase undirected character in the original
// description comes back uppercase.
func (m *Motif) Serialize() string {
	out := make([]byte, 0, m.NumNodes*(m.NumNodes-1)/2)
	for i := 1; i < m.NumNodes; i++ {
		for j := 0; j < i; j++ {
			link := m.matrix[j][i]
			if link == nil {
				out = append(out, '0')
				continue
			}
			ch := m.kindChar[link.Kind.ID]
			if link.LinkID == link.Kind.Forward {
				out = append(out, upper(ch))
			} else {
				out = append(out, lower(ch))
			}
		}
	}
	return string(out)
}
