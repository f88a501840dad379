// Package osm turns OpenStreetMap PBF extracts into weighted road graphs.
package osm

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/alleonhardt/Parallel-SSSP/pkg/geo"
)

// RawEdge represents a directed road segment parsed from OSM data.
type RawEdge struct {
	FromNodeID osm.NodeID
	ToNodeID   osm.NodeID
	Weight     uint32 // distance in millimeters
}

// ParseResult holds the output of parsing an OSM PBF file.
type ParseResult struct {
	Edges   []RawEdge
	NodeLat map[osm.NodeID]float64
	NodeLon map[osm.NodeID]float64
}

// Profile selects which ways become edges.
type Profile int

const (
	// ProfileCar keeps drivable roads and honours oneway rules.
	ProfileCar Profile = iota
	// ProfileAll keeps every way with a highway tag in both directions.
	ProfileAll
)

// ParseProfile maps "car" and "all" to profiles.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "car":
		return ProfileCar, nil
	case "all":
		return ProfileAll, nil
	}
	return ProfileCar, fmt.Errorf("unknown profile %q", s)
}

// carHighways lists highway tag values accessible by car.
var carHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

// isCarAccessible returns true if the way is drivable by car.
func isCarAccessible(tags osm.Tags) bool {
	if !carHighways[tags.Find("highway")] {
		return false
	}
	// Skip area highways (pedestrian plazas).
	if tags.Find("area") == "yes" {
		return false
	}
	switch tags.Find("access") {
	case "no", "private":
		return false
	}
	return tags.Find("motor_vehicle") != "no"
}

// directionFlags returns (forward, backward) based on highway type and oneway tags.
func directionFlags(tags osm.Tags) (forward, backward bool) {
	forward, backward = true, true

	// Implied oneway for motorways and roundabouts.
	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	// Explicit oneway tag overrides.
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no":
		forward, backward = true, true
	case "reversible":
		// Time-dependent, skip entirely.
		forward, backward = false, false
	}
	return forward, backward
}

// accept applies the profile to a way's tags.
func (p Profile) accept(tags osm.Tags) (forward, backward bool) {
	if p == ProfileAll {
		if tags.Find("highway") == "" {
			return false, false
		}
		return true, true
	}
	if !isCarAccessible(tags) {
		return false, false
	}
	return directionFlags(tags)
}

// wayInfo holds parsed way data collected during the first pass.
type wayInfo struct {
	NodeIDs  []osm.NodeID
	Forward  bool
	Backward bool
}

// BBox defines a geographic bounding box for filtering.
// If non-zero, only edges with both endpoints inside the box are kept.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero returns true if the bbox is unset.
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLng == 0 && b.MaxLng == 0
}

// Contains returns true if the point is inside the bounding box.
func (b BBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ParseOptions configures the OSM parser.
type ParseOptions struct {
	BBox    BBox // if non-zero, filter edges to this bounding box
	Profile Profile
}

// Parse reads an OSM PBF file and returns directed, length-weighted edges.
// The reader is consumed twice (seeks back to start for the second pass),
// so it must implement io.ReadSeeker.
func Parse(ctx context.Context, rs io.ReadSeeker, opts ...ParseOptions) (*ParseResult, error) {
	var opt ParseOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	ways, referenced, err := scanWays(ctx, rs, opt.Profile)
	if err != nil {
		return nil, err
	}
	log.Printf("Pass 1 complete: %d ways, %d referenced nodes", len(ways), len(referenced))

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}
	nodeLat, nodeLon, err := scanNodes(ctx, rs, referenced)
	if err != nil {
		return nil, err
	}
	log.Printf("Pass 2 complete: %d node coordinates collected", len(nodeLat))

	result := &ParseResult{NodeLat: nodeLat, NodeLon: nodeLon}
	var skipped, outside int
	for _, w := range ways {
		for i := 0; i+1 < len(w.NodeIDs); i++ {
			from, to := w.NodeIDs[i], w.NodeIDs[i+1]
			fromLat, fromOk := nodeLat[from]
			toLat, toOk := nodeLat[to]
			if !fromOk || !toOk {
				skipped++
				continue
			}
			fromLon, toLon := nodeLon[from], nodeLon[to]

			// Bounding box filter: skip edges with any endpoint outside.
			if !opt.BBox.IsZero() && (!opt.BBox.Contains(fromLat, fromLon) || !opt.BBox.Contains(toLat, toLon)) {
				outside++
				continue
			}

			weight := segmentWeight(fromLat, fromLon, toLat, toLon)
			if w.Forward {
				result.Edges = append(result.Edges, RawEdge{FromNodeID: from, ToNodeID: to, Weight: weight})
			}
			if w.Backward {
				result.Edges = append(result.Edges, RawEdge{FromNodeID: to, ToNodeID: from, Weight: weight})
			}
		}
	}

	if skipped > 0 {
		log.Printf("Warning: skipped %d edges due to missing node coordinates", skipped)
	}
	if outside > 0 {
		log.Printf("Filtered %d edges outside bounding box", outside)
	}
	log.Printf("Built %d directed edges", len(result.Edges))
	return result, nil
}

// segmentWeight returns the great-circle length in millimeters, never zero.
func segmentWeight(lat1, lon1, lat2, lon2 float64) uint32 {
	mm := math.Round(geo.Haversine(lat1, lon1, lat2, lon2) * 1000)
	if mm < 1 {
		return 1
	}
	if mm >= math.MaxUint32-1 {
		return math.MaxUint32 - 1
	}
	return uint32(mm)
}

// scanWays collects accepted ways and the node ids they reference.
func scanWays(ctx context.Context, r io.Reader, profile Profile) ([]wayInfo, map[osm.NodeID]struct{}, error) {
	referenced := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, r, 1)
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || len(w.Nodes) < 2 {
			continue
		}
		fwd, bwd := profile.accept(w.Tags)
		if !fwd && !bwd {
			continue
		}

		ids := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			ids[i] = wn.ID
			referenced[wn.ID] = struct{}{}
		}
		ways = append(ways, wayInfo{NodeIDs: ids, Forward: fwd, Backward: bwd})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	return ways, referenced, nil
}

// scanNodes collects coordinates for referenced nodes only.
func scanNodes(ctx context.Context, r io.Reader, referenced map[osm.NodeID]struct{}) (lat, lon map[osm.NodeID]float64, err error) {
	lat = make(map[osm.NodeID]float64, len(referenced))
	lon = make(map[osm.NodeID]float64, len(referenced))

	scanner := osmpbf.New(ctx, r, 1)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; !needed {
			continue
		}
		lat[n.ID] = n.Lat
		lon[n.ID] = n.Lon
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	return lat, lon, nil
}
