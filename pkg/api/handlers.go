package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"github.com/alleonhardt/Parallel-SSSP/pkg/engine"
	"github.com/alleonhardt/Parallel-SSSP/pkg/locate"
	"github.com/alleonhardt/Parallel-SSSP/pkg/sssp"
)

const (
	maxBodyBytes = 64 << 10
	maxTargets   = 1000
	// maxFullNodes caps the graph size for which "all" may be requested.
	maxFullNodes = 1 << 20
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	q     engine.Querier
	stats StatsResponse
}

// NewHandlers creates handlers backed by q.
func NewHandlers(q engine.Querier, stats StatsResponse) *Handlers {
	return &Handlers{
		q:     q,
		stats: stats,
	}
}

// HandleSSSP handles POST /api/v1/sssp.
func (h *Handlers) HandleSSSP(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req SSSPRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	if (req.Source == nil) == (req.Point == nil) {
		writeError(w, http.StatusBadRequest, "invalid_request", "source")
		return
	}
	if len(req.Targets) > maxTargets {
		writeError(w, http.StatusBadRequest, "too_many_targets", "targets")
		return
	}
	if req.All && h.stats.NumNodes > maxFullNodes {
		writeError(w, http.StatusBadRequest, "graph_too_large", "all")
		return
	}
	for _, t := range req.Targets {
		if t >= h.stats.NumNodes {
			writeError(w, http.StatusBadRequest, "invalid_target", "targets")
			return
		}
	}

	// Resolve the source.
	var source uint32
	var snapDist float64
	if req.Point != nil {
		if err := validateCoord(*req.Point); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", "point")
			return
		}
		m, err := h.q.Nearest(req.Point.Lat, req.Point.Lng)
		if err != nil {
			writeQueryError(w, err)
			return
		}
		source, snapDist = m.Node, m.Dist
	} else {
		source = *req.Source
	}

	res, err := h.q.Solve(r.Context(), source)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	// Build response.
	resp := SSSPResponse{
		Source:             res.Source,
		SnapDistanceMeters: snapDist,
		Rounds:             res.Stats.Rounds,
		DenseRounds:        res.Stats.DenseRounds,
		ElapsedMillis:      float64(res.Elapsed.Microseconds()) / 1000,
	}
	for _, d := range res.Dist {
		if d != sssp.Unreachable {
			resp.Reached++
			resp.MaxDistance = max(resp.MaxDistance, d)
		}
	}
	for _, t := range req.Targets {
		tj := TargetJSON{Node: t}
		if d := res.Dist[t]; d != sssp.Unreachable {
			tj.Reachable, tj.Distance = true, d
		}
		resp.Targets = append(resp.Targets, tj)
	}
	if req.All {
		resp.Distances = make([]*uint32, len(res.Dist))
		for i := range res.Dist {
			if res.Dist[i] != sssp.Unreachable {
				resp.Distances[i] = &res.Dist[i]
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sssp.ErrSourceOutOfRange):
		writeError(w, http.StatusBadRequest, "invalid_source", "source")
	case errors.Is(err, locate.ErrNoCoordinates):
		writeError(w, http.StatusBadRequest, "coordinates_unavailable", "point")
	case errors.Is(err, locate.ErrPointTooFar):
		writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_node", "point")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
