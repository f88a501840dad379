// Package locate maps coordinates to graph nodes.
package locate

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"github.com/alleonhardt/Parallel-SSSP/pkg/geo"
	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
)

// MaxSnapDistMeters is the largest accepted distance between a query point
// and the node it resolves to.
const MaxSnapDistMeters = 500.0

var (
	// ErrPointTooFar is returned when no node lies within MaxSnapDistMeters.
	ErrPointTooFar = errors.New("point too far from any node")
	// ErrNoCoordinates is returned for graphs without node coordinates.
	ErrNoCoordinates = errors.New("graph has no node coordinates")
)

// Match is a node resolved from a query point.
type Match struct {
	Node uint32
	Dist float64 // meters
}

// Locator answers nearest-node queries with an R-tree over node positions.
// Only nodes with at least one incident edge are indexed.
type Locator struct {
	tr  rtree.RTreeG[uint32]
	lat []float64
	lon []float64
}

// New indexes the nodes of g.
func New(g *graph.Graph) (*Locator, error) {
	if !g.HasCoordinates() {
		return nil, ErrNoCoordinates
	}
	touched := make([]bool, g.NumNodes)
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		if start < end {
			touched[u] = true
		}
		for e := start; e < end; e++ {
			touched[g.Head[e]] = true
		}
	}

	l := &Locator{lat: g.NodeLat, lon: g.NodeLon}
	for u, ok := range touched {
		if !ok {
			continue
		}
		p := [2]float64{g.NodeLon[u], g.NodeLat[u]}
		l.tr.Insert(p, p, uint32(u))
	}
	return l, nil
}

// Len returns the number of indexed nodes.
func (l *Locator) Len() int { return l.tr.Len() }

// Nearest returns the indexed node closest to (lat, lng).
func (l *Locator) Nearest(lat, lng float64) (Match, error) {
	dLat, dLon := geo.MetersToDegrees(lat, MaxSnapDistMeters)
	best := Match{Dist: math.Inf(1)}
	found := false
	l.tr.Search(
		[2]float64{lng - dLon, lat - dLat},
		[2]float64{lng + dLon, lat + dLat},
		func(_, _ [2]float64, u uint32) bool {
			d := geo.EquirectangularDist(lat, lng, l.lat[u], l.lon[u])
			if d < best.Dist || (d == best.Dist && u < best.Node) {
				best = Match{Node: u, Dist: d}
				found = true
			}
			return true
		},
	)
	if !found {
		return Match{}, ErrPointTooFar
	}

	// Equirectangular ranking is enough to pick the node; the reported
	// distance and the cutoff use the exact formula.
	best.Dist = geo.Haversine(lat, lng, l.lat[best.Node], l.lon[best.Node])
	if best.Dist > MaxSnapDistMeters {
		return Match{}, ErrPointTooFar
	}
	return best, nil
}
