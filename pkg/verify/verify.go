// Package verify checks shortest-path distance arrays against a sequential
// Dijkstra and against the optimality conditions of the graph.
package verify

import (
	"errors"
	"fmt"
	"math"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
)

const (
	unreachable = math.MaxUint32
	maxDist     = unreachable - 1
)

// Sentinel errors.
var (
	ErrMismatch       = errors.New("verify: distance mismatch")
	ErrNotRelaxed     = errors.New("verify: edge can still be relaxed")
	ErrUnsupported    = errors.New("verify: distance has no tight in-edge")
	ErrBadSource      = errors.New("verify: source distance is not zero")
	ErrLengthMismatch = errors.New("verify: distance arrays differ in length")
)

func satAdd(d, w uint32) uint32 {
	if d == unreachable {
		return unreachable
	}
	s := uint64(d) + uint64(w)
	if s > maxDist {
		return maxDist
	}
	return uint32(s)
}

// Dijkstra computes distances from source sequentially. Unreachable nodes
// hold math.MaxUint32; path lengths saturate at math.MaxUint32-1.
func Dijkstra(g *graph.Graph, source uint32) []uint32 {
	dist := make([]uint32, g.NumNodes)
	for i := range dist {
		dist[i] = unreachable
	}
	if source >= g.NumNodes {
		return dist
	}

	var pq MinHeap
	dist[source] = 0
	pq.Push(source, 0)
	for pq.Len() > 0 {
		item := pq.Pop()
		if item.Dist > dist[item.Node] {
			continue // stale entry
		}
		start, end := g.EdgesFrom(item.Node)
		for e := start; e < end; e++ {
			v := g.Head[e]
			nd := satAdd(item.Dist, g.Weight[e])
			if nd < dist[v] {
				dist[v] = nd
				pq.Push(v, nd)
			}
		}
	}
	return dist
}

// Compare reports the first index where got differs from want.
func Compare(want, got []uint32) error {
	if len(want) != len(got) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("%w: node %d: want %d, got %d", ErrMismatch, i, want[i], got[i])
		}
	}
	return nil
}

// Check verifies dist without a reference solution: the source is at zero,
// no edge can lower any distance and every other finite distance is
// attained by some in-edge.
func Check(g *graph.Graph, source uint32, dist []uint32) error {
	if len(dist) != int(g.NumNodes) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(dist), g.NumNodes)
	}
	if source >= g.NumNodes || dist[source] != 0 {
		return ErrBadSource
	}

	supported := make([]bool, g.NumNodes)
	supported[source] = true
	for u := uint32(0); u < g.NumNodes; u++ {
		if dist[u] == unreachable {
			continue
		}
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.Head[e]
			cand := satAdd(dist[u], g.Weight[e])
			if cand < dist[v] {
				return fmt.Errorf("%w: %d->%d gives %d < %d", ErrNotRelaxed, u, v, cand, dist[v])
			}
			if cand == dist[v] {
				supported[v] = true
			}
		}
	}
	for v, ok := range supported {
		if !ok && dist[v] != unreachable {
			return fmt.Errorf("%w: node %d at %d", ErrUnsupported, v, dist[v])
		}
	}
	return nil
}
