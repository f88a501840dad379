package ingest

import (
	"fmt"

	osmparser "github.com/alleonhardt/Parallel-SSSP/pkg/osm"
)

// Presets are named bounding boxes accepted wherever a bbox is.
var Presets = map[string]osmparser.BBox{
	"singapore": {MinLat: 1.15, MaxLat: 1.48, MinLng: 103.6, MaxLng: 104.1},
	"kl":        {MinLat: 2.75, MaxLat: 3.5, MinLng: 101.2, MaxLng: 102.0}, // Selangor + Kuala Lumpur
}

// ParseBBox accepts a preset name or "minLat,minLng,maxLat,maxLng".
func ParseBBox(s string) (osmparser.BBox, error) {
	if b, ok := Presets[s]; ok {
		return b, nil
	}
	var minLat, minLng, maxLat, maxLng float64
	if _, err := fmt.Sscanf(s, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng); err != nil {
		return osmparser.BBox{}, fmt.Errorf("invalid bbox %q (expected minLat,minLng,maxLat,maxLng): %w", s, err)
	}
	if minLat > maxLat || minLng > maxLng {
		return osmparser.BBox{}, fmt.Errorf("invalid bbox %q: min exceeds max", s)
	}
	return osmparser.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}, nil
}
