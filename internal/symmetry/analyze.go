package symmetry

import (
	"sort"

	"github.com/ldemailly/ismags/internal/motif"
)

// Analyze computes the motif's symmetry properties: its automorphism
// group (as permutations) and the transitively-closed smaller/larger
// order constraints derived from its orbits.
func Analyze(m *motif.Motif) *Properties {
	smaller := make(map[int]map[int]bool)
	larger := make(map[int]map[int]bool)
	props := NewProperties(m.NumNodes, smaller, larger)

	orbits := make([]int, m.NumNodes)
	for i := range orbits {
		orbits[i] = -1
	}
	numberOfOrbits := 0

	o := newOPP(m)
	mapNodes(m, props, orbits, &numberOfOrbits, o, true)
	return props
}

func mergeOrbits(a, b int, orbits []int, numberOfOrbits *int) {
	orbitA, orbitB := orbits[a], orbits[b]
	switch {
	case orbitA == -1 && orbitB == -1:
		*numberOfOrbits++
		orbits[a] = *numberOfOrbits
		orbits[b] = *numberOfOrbits
	case orbitB == -1:
		orbits[b] = orbitA
	case orbitA == -1:
		orbits[a] = orbitB
	default:
		for i := range orbits {
			if orbits[i] == orbitA {
				orbits[i] = orbitB
			}
		}
	}
}

// mapNodes is the recursive OPP branch-and-bound search: it finds the
// lowest-numbered motif node still in a multi-element top-row cell, tries
// mapping it against every candidate in the corresponding bottom-row
// cell, and records a permutation whenever a branch refines down to an
// all-singleton partition.
//
// An "identical subsets" fast path that could short-circuit this loop
// for already-equal top/bottom cells is intentionally not implemented:
// its most natural formulation reuses a loop variable across iterations
// and produces wrong permutations on exactly the cases it tries to
// short-circuit. The general loop below handles those cases correctly
// on its own, just without the shortcut.
func mapNodes(m *motif.Motif, props *Properties, orbits []int, numberOfOrbits *int, o *opp, main bool) {
	allOne := true
	splitColor := -1
	lowest := int(^uint(0) >> 1)

	topKeys := sortedColorKeys(o.colorTop)
	for _, i := range topKeys {
		listI := o.colorTop[i]
		if len(listI) == 1 {
			continue
		}
		allOne = false
		for _, motifNodeID := range listI {
			if motifNodeID < lowest {
				splitColor = i
				lowest = motifNodeID
			}
		}
	}

	if allOne {
		permutation := make([]int, m.NumNodes)
		for j := 0; j < m.NumNodes; j++ {
			bottomColor := o.colorBottom[j][0]
			topColor := o.colorTop[j][0]
			permutation[topColor] = bottomColor
			mergeOrbits(bottomColor, topColor, orbits, numberOfOrbits)
		}
		props.AddPermutation(permutation)
		return
	}

	top := lowest
	bottomSplit := append([]int(nil), o.colorBottom[splitColor]...)
	sort.Ints(bottomSplit)

	for _, motifNode := range bottomSplit {
		if orbits[top] != -1 && orbits[top] == orbits[motifNode] {
			continue
		}
		next := o.mapNodeBetweenPartitions(top, motifNode, splitColor)
		newMain := main && motifNode == top
		if next != nil {
			mapNodes(m, props, orbits, numberOfOrbits, next, newMain)
		}
	}

	if main {
		props.Fix(top, orbits)
	}
}
