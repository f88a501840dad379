package osm

import (
	"github.com/paulmach/osm"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
)

// ToGraph renumbers the OSM node ids referenced by result into a dense
// [0, n) range and builds a weighted CSR graph carrying node coordinates.
// Node indices follow first appearance in the edge list.
func ToGraph(result *ParseResult) (*graph.Graph, error) {
	index := make(map[osm.NodeID]uint32)
	var ids []osm.NodeID
	nodeIndex := func(id osm.NodeID) uint32 {
		if idx, ok := index[id]; ok {
			return idx
		}
		idx := uint32(len(ids))
		index[id] = idx
		ids = append(ids, id)
		return idx
	}

	edges := make([]graph.Edge, len(result.Edges))
	for i, e := range result.Edges {
		edges[i] = graph.Edge{
			From:   nodeIndex(e.FromNodeID),
			To:     nodeIndex(e.ToNodeID),
			Weight: e.Weight,
		}
	}

	g, err := graph.Build(uint32(len(ids)), edges, true)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		g.NodeLat = make([]float64, len(ids))
		g.NodeLon = make([]float64, len(ids))
		for i, id := range ids {
			g.NodeLat[i] = result.NodeLat[id]
			g.NodeLon[i] = result.NodeLon[id]
		}
	}
	return g, nil
}
