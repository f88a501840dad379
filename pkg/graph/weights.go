package graph

import (
	"fmt"
	"sort"

	"github.com/alleonhardt/Parallel-SSSP/pkg/parallel"
)

// Default range for generated weights.
const (
	DefaultMinWeight = 1
	DefaultMaxWeight = 1 << 18
)

// GenerateWeights assigns every edge a deterministic pseudo-random weight in
// [lo, hi). The weight depends only on the unordered endpoint pair, so the
// two directions of a symmetric edge always agree.
func GenerateWeights(g *Graph, lo, hi uint32) error {
	if hi <= lo {
		return fmt.Errorf("empty weight range [%d,%d)", lo, hi)
	}
	span := hi - lo
	weight := make([]uint32, g.NumEdges)
	parallel.New(0).ForRange(int(g.NumNodes), 1024, func(first, last int) {
		for u := uint32(first); u < uint32(last); u++ {
			start, end := g.EdgesFrom(u)
			for e := start; e < end; e++ {
				a, b := u, g.Head[e]
				if a > b {
					a, b = b, a
				}
				weight[e] = lo + parallel.Hash32(parallel.Hash32(a)^b)%span
			}
		}
	})
	g.Weight = weight
	g.Weighted = true
	return nil
}

// Symmetrize returns a graph containing every edge of g together with its
// reverse. Parallel edges collapse to the lightest one, so u->v and v->u end
// up with equal weights.
func Symmetrize(g *Graph) (*Graph, error) {
	edges := make([]Edge, 0, 2*int(g.NumEdges))
	for _, e := range Edges(g) {
		edges = append(edges, e, Edge{From: e.To, To: e.From, Weight: e.Weight})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Weight < edges[j].Weight
	})

	// Keep the first (lightest) copy of every (from, to) pair.
	out := edges[:0]
	for i, e := range edges {
		if i > 0 && e.From == edges[i-1].From && e.To == edges[i-1].To {
			continue
		}
		out = append(out, e)
	}

	sym, err := Build(g.NumNodes, out, g.Weighted)
	if err != nil {
		return nil, err
	}
	sym.Symmetrized = true
	sym.NodeLat = g.NodeLat
	sym.NodeLon = g.NodeLon
	return sym, nil
}
