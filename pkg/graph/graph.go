package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidGraph is wrapped by every CSR validation failure.
var ErrInvalidGraph = errors.New("invalid graph")

// Graph represents a directed graph in CSR (Compressed Sparse Row) format.
// A Graph is never mutated after construction, so it may be shared by any
// number of concurrent readers.
type Graph struct {
	NumNodes uint32
	NumEdges uint32
	FirstOut []uint32 // len: NumNodes + 1; FirstOut[i]..FirstOut[i+1] are edges from node i
	Head     []uint32 // len: NumEdges; target node for each edge
	Weight   []uint32 // len: NumEdges when Weighted, else nil

	// Weighted reports whether Weight carries edge lengths.
	Weighted bool
	// Symmetrized marks graphs where every edge u->v has a twin v->u of
	// equal weight. Solvers pull distances from neighbours on such graphs.
	Symmetrized bool

	// Node coordinates, present only for road networks.
	NodeLat []float64 // len: NumNodes or 0
	NodeLon []float64 // len: NumNodes or 0
}

// Edge is a single directed edge used when constructing a Graph.
type Edge struct {
	From   uint32
	To     uint32
	Weight uint32
}

// EdgesFrom returns the range of edge indices for edges originating from node u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// Degree returns the out-degree of u.
func (g *Graph) Degree(u uint32) uint32 {
	return g.FirstOut[u+1] - g.FirstOut[u]
}

// OutEdges returns the heads and weights of u's out-edges as sub-slices of
// the CSR arrays. weights is nil for unweighted graphs.
func (g *Graph) OutEdges(u uint32) (heads, weights []uint32) {
	start, end := g.FirstOut[u], g.FirstOut[u+1]
	heads = g.Head[start:end]
	if g.Weighted {
		weights = g.Weight[start:end]
	}
	return heads, weights
}

// HasCoordinates reports whether every node carries a lat/lon pair.
func (g *Graph) HasCoordinates() bool {
	return g.NumNodes > 0 && len(g.NodeLat) == int(g.NumNodes) && len(g.NodeLon) == int(g.NumNodes)
}

// Validate checks CSR invariants and array lengths.
func Validate(g *Graph) error {
	if err := validateCSR(g.FirstOut, g.Head, g.NumNodes); err != nil {
		return err
	}
	if uint32(len(g.Head)) != g.NumEdges {
		return fmt.Errorf("%w: Head length %d != NumEdges %d", ErrInvalidGraph, len(g.Head), g.NumEdges)
	}
	if g.Weighted && len(g.Weight) != len(g.Head) {
		return fmt.Errorf("%w: Weight length %d != NumEdges %d", ErrInvalidGraph, len(g.Weight), g.NumEdges)
	}
	if len(g.NodeLat) != len(g.NodeLon) {
		return fmt.Errorf("%w: NodeLat length %d != NodeLon length %d", ErrInvalidGraph, len(g.NodeLat), len(g.NodeLon))
	}
	if len(g.NodeLat) != 0 && len(g.NodeLat) != int(g.NumNodes) {
		return fmt.Errorf("%w: %d coordinates for %d nodes", ErrInvalidGraph, len(g.NodeLat), g.NumNodes)
	}
	return nil
}

// validateCSR checks CSR invariants.
func validateCSR(firstOut, head []uint32, numNodes uint32) error {
	if uint32(len(firstOut)) != numNodes+1 {
		return fmt.Errorf("%w: FirstOut length %d != NumNodes+1 %d", ErrInvalidGraph, len(firstOut), numNodes+1)
	}
	if firstOut[0] != 0 {
		return fmt.Errorf("%w: FirstOut[0]=%d", ErrInvalidGraph, firstOut[0])
	}
	numEdges := firstOut[numNodes]
	if uint32(len(head)) != numEdges {
		return fmt.Errorf("%w: Head length %d != FirstOut[NumNodes] %d", ErrInvalidGraph, len(head), numEdges)
	}
	for i := uint32(1); i <= numNodes; i++ {
		if firstOut[i] < firstOut[i-1] {
			return fmt.Errorf("%w: FirstOut not monotonic at %d: %d < %d", ErrInvalidGraph, i, firstOut[i], firstOut[i-1])
		}
	}
	for i, h := range head {
		if h >= numNodes {
			return fmt.Errorf("%w: Head[%d]=%d >= NumNodes=%d", ErrInvalidGraph, i, h, numNodes)
		}
	}
	return nil
}
