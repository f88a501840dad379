package sssp

import "errors"

// Sentinel errors returned by the solver.
var (
	// ErrNilGraph indicates that a nil *graph.Graph was passed to NewSolver.
	ErrNilGraph = errors.New("sssp: graph is nil")

	// ErrUnweightedGraph indicates that the input graph has no edge weights.
	// Generate weights during ingestion before solving.
	ErrUnweightedGraph = errors.New("sssp: input graph is unweighted")

	// ErrSourceOutOfRange indicates a source id outside [0, NumNodes).
	ErrSourceOutOfRange = errors.New("sssp: source node out of range")

	// ErrBadParam indicates a zero Param for rho- or delta-stepping.
	ErrBadParam = errors.New("sssp: param must be positive")

	// ErrShortBuffer indicates that the destination slice cannot hold one
	// distance per node.
	ErrShortBuffer = errors.New("sssp: destination shorter than node count")

	// ErrUnknownAlgorithm is returned by ParseAlgorithm.
	ErrUnknownAlgorithm = errors.New("sssp: unknown algorithm")
)
