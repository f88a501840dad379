package api

// SSSPRequest is the JSON body for POST /api/v1/sssp. Exactly one of
// Source and Point must be set.
type SSSPRequest struct {
	Source  *uint32     `json:"source,omitempty"`
	Point   *LatLngJSON `json:"point,omitempty"`
	Targets []uint32    `json:"targets,omitempty"`
	// All requests the full distance array.
	All bool `json:"all,omitempty"`
}

// LatLngJSON represents a lat/lng pair in JSON.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SSSPResponse is the JSON response for a successful solve.
type SSSPResponse struct {
	Source             uint32       `json:"source"`
	SnapDistanceMeters float64      `json:"snap_distance_meters,omitempty"`
	Reached            uint32       `json:"reached"`
	MaxDistance        uint32       `json:"max_distance"`
	Rounds             int          `json:"rounds"`
	DenseRounds        int          `json:"dense_rounds"`
	ElapsedMillis      float64      `json:"elapsed_ms"`
	Targets            []TargetJSON `json:"targets,omitempty"`
	Distances          []*uint32    `json:"distances,omitempty"` // null for unreachable nodes
}

// TargetJSON is the distance to one requested node.
type TargetJSON struct {
	Node      uint32 `json:"node"`
	Reachable bool   `json:"reachable"`
	Distance  uint32 `json:"distance,omitempty"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes    uint32 `json:"num_nodes"`
	NumEdges    uint32 `json:"num_edges"`
	Symmetrized bool   `json:"symmetrized"`
	Coordinates bool   `json:"coordinates"`
	Algorithm   string `json:"algorithm"`
	Param       uint64 `json:"param"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
