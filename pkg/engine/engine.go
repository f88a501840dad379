// Package engine serves shortest-path queries over one loaded graph.
package engine

import (
	"context"
	"time"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
	"github.com/alleonhardt/Parallel-SSSP/pkg/locate"
	"github.com/alleonhardt/Parallel-SSSP/pkg/sssp"
	"github.com/alleonhardt/Parallel-SSSP/pkg/telemetry"
)

// Result is the output of one solve.
type Result struct {
	Source  uint32
	Dist    []uint32 // sssp.Unreachable for nodes not reachable from Source
	Stats   sssp.RunStats
	Elapsed time.Duration
}

// Querier is the interface the HTTP layer depends on.
type Querier interface {
	Solve(ctx context.Context, source uint32) (*Result, error)
	Nearest(lat, lng float64) (locate.Match, error)
}

// Engine implements Querier with a single solver. The solver owns all its
// working memory, so solves are serialised.
type Engine struct {
	g       *graph.Graph
	solver  *sssp.Solver
	locator *locate.Locator // nil without coordinates
	metrics *telemetry.PromSink
	lock    chan struct{}
}

var _ Querier = (*Engine)(nil)

// New builds an engine for g. metrics may be nil.
func New(g *graph.Graph, metrics *telemetry.PromSink, opts ...sssp.Option) (*Engine, error) {
	if metrics != nil {
		opts = append(opts, sssp.WithSink(metrics))
	}
	solver, err := sssp.NewSolver(g, opts...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		g:       g,
		solver:  solver,
		metrics: metrics,
		lock:    make(chan struct{}, 1),
	}
	if g.HasCoordinates() {
		if e.locator, err = locate.New(g); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Graph returns the served graph.
func (e *Engine) Graph() *graph.Graph { return e.g }

// Options returns the solver configuration.
func (e *Engine) Options() sssp.Options { return e.solver.Options() }

// Solve computes distances from source. It waits for running solves and
// gives up when ctx ends first; a solve that has started runs to completion.
func (e *Engine) Solve(ctx context.Context, source uint32) (*Result, error) {
	select {
	case e.lock <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-e.lock }()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	dist, err := e.solver.Solve(source)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.ObserveSolve(elapsed)
	}
	return &Result{
		Source:  source,
		Dist:    dist,
		Stats:   e.solver.LastRun(),
		Elapsed: elapsed,
	}, nil
}

// Nearest resolves a coordinate to the closest graph node.
func (e *Engine) Nearest(lat, lng float64) (locate.Match, error) {
	if e.locator == nil {
		return locate.Match{}, locate.ErrNoCoordinates
	}
	return e.locator.Nearest(lat, lng)
}
