package graph

import (
	"fmt"
	"sort"
)

// Build creates a CSR Graph with n nodes from an edge list.
// Out-edges of every node are ordered by head. Weights are dropped when
// weighted is false.
func Build(n uint32, edges []Edge, weighted bool) (*Graph, error) {
	for i, e := range edges {
		if e.From >= n || e.To >= n {
			return nil, fmt.Errorf("%w: edge %d (%d->%d) outside [0,%d)", ErrInvalidGraph, i, e.From, e.To, n)
		}
	}

	// Step 1: Sort a copy of the edges by source node, then head.
	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})

	// Step 2: Build CSR arrays.
	numEdges := uint32(len(sorted))
	firstOut := make([]uint32, n+1)
	head := make([]uint32, numEdges)
	var weight []uint32
	if weighted {
		weight = make([]uint32, numEdges)
	}

	for i, e := range sorted {
		head[i] = e.To
		if weighted {
			weight[i] = e.Weight
		}
		firstOut[e.From+1]++
	}
	// Prefix sum.
	for i := uint32(1); i <= n; i++ {
		firstOut[i] += firstOut[i-1]
	}

	return &Graph{
		NumNodes: n,
		NumEdges: numEdges,
		FirstOut: firstOut,
		Head:     head,
		Weight:   weight,
		Weighted: weighted,
	}, nil
}

// Edges flattens g back into an edge list in CSR order.
func Edges(g *Graph) []Edge {
	edges := make([]Edge, 0, g.NumEdges)
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			edge := Edge{From: u, To: g.Head[e]}
			if g.Weighted {
				edge.Weight = g.Weight[e]
			}
			edges = append(edges, edge)
		}
	}
	return edges
}
