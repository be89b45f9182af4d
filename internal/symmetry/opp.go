// Package symmetry computes a motif's automorphism group via ordered-pair
// partition (OPP) refinement, derives symmetry-breaking order constraints
// from it, and drives candidate-list bound narrowing during search.
package symmetry

import (
	"sort"

	"github.com/ldemailly/ismags/internal/motif"
)

// opp is one state of the ordered pair partition: a top row and a bottom
// row of motif nodes, grouped into numbered cells ("colors"). Two motif
// nodes are still considered possibly-equivalent as long as they share a
// color in both rows.
type opp struct {
	m              *motif.Motif
	topNodeColor   []int
	colorTop       map[int][]int
	colorBottom    map[int][]int
	nextColor      int
	colorsToRecheck map[int]bool
}

func newOPP(m *motif.Motif) *opp {
	o := &opp{
		m:               m,
		topNodeColor:    make([]int, m.NumNodes),
		colorTop:        make(map[int][]int),
		colorBottom:     make(map[int][]int),
		nextColor:       1,
		colorsToRecheck: make(map[int]bool),
	}
	top := make([]int, m.NumNodes)
	bottom := make([]int, m.NumNodes)
	for i := 0; i < m.NumNodes; i++ {
		top[i] = i
		bottom[i] = i
	}
	o.colorTop[0] = top
	o.colorBottom[0] = bottom
	return o
}

func (o *opp) clone() *opp {
	c := &opp{
		m:               o.m,
		topNodeColor:    append([]int(nil), o.topNodeColor...),
		colorTop:        make(map[int][]int, len(o.colorTop)),
		colorBottom:     make(map[int][]int, len(o.colorBottom)),
		nextColor:       o.nextColor,
		colorsToRecheck: make(map[int]bool),
	}
	for k, v := range o.colorTop {
		c.colorTop[k] = append([]int(nil), v...)
	}
	for k, v := range o.colorBottom {
		c.colorBottom[k] = append([]int(nil), v...)
	}
	return c
}

func sortedColorKeys(m map[int][]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func removeInt(list []int, v int) []int {
	out := list[:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// mapNodeBetweenPartitions splits off top/bottom motif node pair into
// their own new color, then re-refines. Returns nil if the resulting OPP
// is invalid (some cell's rows no longer have matching sizes).
func (o *opp) mapNodeBetweenPartitions(topID, bottomID, splitColor int) *opp {
	n := o.clone()

	n.colorBottom[splitColor] = removeInt(append([]int(nil), n.colorBottom[splitColor]...), bottomID)
	n.colorTop[splitColor] = removeInt(append([]int(nil), n.colorTop[splitColor]...), topID)

	newColor := n.nextColor
	n.nextColor++
	n.colorBottom[newColor] = []int{bottomID}
	n.colorTop[newColor] = []int{topID}

	if n.refineColors(newColor) {
		return n
	}
	return nil
}

func (o *opp) refineColors(color int) bool {
	ok := o.refine(color)
	for ok && len(o.colorsToRecheck) > 0 {
		keys := make([]int, 0, len(o.colorsToRecheck))
		for k := range o.colorsToRecheck {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		next := keys[0]
		ok = o.refine(next)
		delete(o.colorsToRecheck, next)
	}
	return ok
}

func compareRows(a, b []int) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// refine performs one refinement pass starting at the given color,
// splitting it (and any newly implicated colors) by connectivity degree
// against every link kind/direction.
func (o *opp) refine(color int) bool {
	n := o.m.NumNodes
	numLinkTypes := numLinkTypes(o.m)

	degreesTop := make([][]int, n)
	degreesBottom := make([][]int, n)
	for i := 0; i < n; i++ {
		degreesTop[i] = make([]int, numLinkTypes*2)
		degreesBottom[i] = make([]int, numLinkTypes*2)
	}

	reachedColors := make(map[int]bool)

	for _, node := range o.colorTop[color] {
		links := o.m.Links[node]
		conn := o.m.Conn[node]
		for k, i := range conn {
			link := links[k]
			kindID := link.Kind.ID
			if link.LinkID == link.Kind.Forward {
				degreesTop[i][kindID]++
				degreesTop[node][numLinkTypes+kindID]++
			} else {
				degreesTop[node][kindID]++
				degreesTop[i][numLinkTypes+kindID]++
			}
			reachedColors[o.topNodeColor[i]] = true
		}
	}

	for _, node := range o.colorBottom[color] {
		links := o.m.Links[node]
		conn := o.m.Conn[node]
		for k, i := range conn {
			link := links[k]
			kindID := link.Kind.ID
			if link.LinkID == link.Kind.Forward {
				degreesBottom[i][kindID]++
				degreesBottom[node][numLinkTypes+kindID]++
			} else {
				degreesBottom[node][kindID]++
				degreesBottom[i][numLinkTypes+kindID]++
			}
		}
	}

	reachedKeys := make([]int, 0, len(reachedColors))
	for k := range reachedColors {
		reachedKeys = append(reachedKeys, k)
	}
	sort.Ints(reachedKeys)

	for _, integer := range reachedKeys {
		nodesInColor := o.colorTop[integer]
		currentMapping := []colorMapping{{integer, degreesTop[nodesInColor[0]]}}
		o.colorTop[integer] = []int{nodesInColor[0]}
		o.topNodeColor[nodesInColor[0]] = integer

		for i := 1; i < len(nodesInColor); i++ {
			node := nodesInColor[i]
			row := degreesTop[node]
			added := false
			for _, entry := range currentMapping {
				if compareRows(entry.row, row) {
					o.colorTop[entry.color] = append(o.colorTop[entry.color], node)
					o.topNodeColor[node] = entry.color
					added = true
					break
				}
			}
			if !added {
				newColor := o.nextColor
				o.nextColor++
				o.colorsToRecheck[newColor] = true
				o.colorsToRecheck[color] = true
				currentMapping = append(currentMapping, colorMapping{newColor, row})
				o.colorTop[newColor] = []int{node}
				o.topNodeColor[node] = newColor
			}
		}

		nodesInBottomColor := o.colorBottom[integer]
		delete(o.colorBottom, integer)

		for _, nodeID := range nodesInBottomColor {
			o.refineBottom(nodeID, degreesBottom, currentMapping)
		}

		topKeys := sortedColorKeys(o.colorTop)
		for _, k := range topKeys {
			bottomSet, hasBottom := o.colorBottom[k]
			topSet := o.colorTop[k]
			if !hasBottom || len(topSet) != len(bottomSet) {
				return false
			}
		}
	}

	return true
}

type colorMapping struct {
	color int
	row   []int
}

func (o *opp) refineBottom(nodeID int, degreesBottom [][]int, currentMapping []colorMapping) {
	row := degreesBottom[nodeID]
	for _, entry := range currentMapping {
		if compareRows(entry.row, row) {
			o.colorBottom[entry.color] = append(o.colorBottom[entry.color], nodeID)
			return
		}
	}
}

func numLinkTypes(m *motif.Motif) int {
	max := -1
	for id := range m.LinkKindIDs {
		if id > max {
			max = id
		}
	}
	return max + 1
}
