package sssp

import (
	"fmt"
	"sync/atomic"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
	"github.com/alleonhardt/Parallel-SSSP/pkg/parallel"
)

type mode int

const (
	modeSparse mode = iota
	modeDense
)

// RunStats describes the rounds of the most recent solve.
type RunStats struct {
	Rounds         int // driver iterations, one relax and one pack each
	SparseRounds   int
	DenseRounds    int
	DenseSubRounds int // extra sub-rounds run inside dense rounds
	ModeSwitches   int
}

// Solver owns all per-solve state for one graph. State is allocated once
// and reset between solves.
type Solver struct {
	g    *graph.Graph
	opts Options
	pool *parallel.Pool

	info    []nodeInfo
	que     [2][]uint32
	cur     int
	scan    []uint32
	gather  []uint32
	sparse  *sparseQueue
	sampler *sampler

	cutoff uint64
	delta  uint64
	mode   mode

	sink  Sink
	stamp []atomic.Uint32 // per-node epoch of the last reported insertion
	epoch uint32

	stats RunStats
}

// NewSolver validates g and opts and allocates solver state.
func NewSolver(g *graph.Graph, opts ...Option) (*Solver, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.Weighted {
		return nil, ErrUnweightedGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Param == 0 && o.Algorithm != BellmanFord {
		return nil, fmt.Errorf("%w: %s", ErrBadParam, o.Algorithm)
	}
	if o.Algorithm < RhoStepping || o.Algorithm > BellmanFord {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, o.Algorithm)
	}
	if o.Hash == nil {
		o.Hash = parallel.Hash32
	}

	n := g.NumNodes
	bounds := classBounds(n)
	capacity := bounds[len(bounds)-1]

	s := &Solver{
		g:       g,
		opts:    o,
		pool:    parallel.New(o.Workers),
		info:    make([]nodeInfo, n),
		que:     [2][]uint32{make([]uint32, capacity), make([]uint32, capacity)},
		scan:    make([]uint32, max(capacity, int(n))),
		gather:  make([]uint32, capacity),
		sampler: newSampler(o.Hash, o.Seeds),
		cutoff:  o.densityCutoff(n, g.NumEdges),
	}
	s.sparse = newSparseQueue(s, bounds)
	s.SetSink(o.Sink)
	return s, nil
}

// Graph returns the graph the solver was built for.
func (s *Solver) Graph() *graph.Graph { return s.g }

// Options returns the resolved solver options.
func (s *Solver) Options() Options { return s.opts }

// DensityCutoff returns the frontier size at which rounds turn dense.
func (s *Solver) DensityCutoff() uint64 { return s.cutoff }

// LastRun returns statistics of the most recent solve.
func (s *Solver) LastRun() RunStats { return s.stats }

// Solve computes shortest distances from source into a new slice.
// Unreachable nodes hold Unreachable.
func (s *Solver) Solve(source uint32) ([]uint32, error) {
	dist := make([]uint32, s.g.NumNodes)
	if err := s.SolveInto(source, dist); err != nil {
		return nil, err
	}
	return dist, nil
}

// SolveInto computes shortest distances from source into dst, which must
// hold at least NumNodes entries.
func (s *Solver) SolveInto(source uint32, dst []uint32) error {
	if source >= s.g.NumNodes {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrSourceOutOfRange, source, s.g.NumNodes)
	}
	if len(dst) < int(s.g.NumNodes) {
		return fmt.Errorf("%w: %d < %d", ErrShortBuffer, len(dst), s.g.NumNodes)
	}

	s.init(source)
	for sz := uint64(1); sz > 0; {
		prev := s.mode
		if s.mode == modeSparse {
			s.relaxSparse(int(sz))
			s.stats.SparseRounds++
		} else {
			s.relaxDense()
			s.stats.DenseRounds++
		}
		sz = s.pack()
		if s.mode != prev {
			s.stats.ModeSwitches++
		}
		s.stats.Rounds++
		s.boundary()
	}

	s.pool.ForRange(int(s.g.NumNodes), 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = s.info[i].dist.Load()
		}
	})
	if s.sink != nil {
		s.sink.SolveComplete(source)
	}
	return nil
}

// init resets distances, flags and buffers and seeds the frontier with source.
func (s *Solver) init(source uint32) {
	for _, buf := range s.que {
		s.pool.ForRange(len(buf), 1, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				buf[i] = emptySlot
			}
		})
	}
	s.pool.ForRange(len(s.info), 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			s.info[i].dist.Store(Unreachable)
			s.info[i].flags.Store(0)
		}
	})
	if s.sink != nil {
		s.pool.ForRange(len(s.stamp), 1, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				s.stamp[i].Store(0)
			}
		})
	}

	s.sampler.reset()
	s.delta = s.opts.Param
	s.cur = 0
	s.mode = modeSparse
	s.epoch = 1
	s.stats = RunStats{}

	s.que[s.cur][0] = source
	s.info[source].dist.Store(0)
	s.report(source)
}
