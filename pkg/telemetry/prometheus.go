package telemetry

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alleonhardt/Parallel-SSSP/pkg/sssp"
)

// PromSink exports solver activity as Prometheus metrics.
type PromSink struct {
	insertions    prometheus.Counter
	relaxations   prometheus.Counter
	rounds        prometheus.Counter
	solves        prometheus.Counter
	roundsPerRun  prometheus.Histogram
	solveDuration prometheus.Histogram

	open atomic.Int64 // rounds of the solve in progress
}

var _ sssp.Sink = (*PromSink)(nil)

// NewPromSink registers the solver metrics with reg.
func NewPromSink(reg prometheus.Registerer) *PromSink {
	f := promauto.With(reg)
	return &PromSink{
		insertions: f.NewCounter(prometheus.CounterOpts{
			Name: "sssp_node_insertions_total",
			Help: "Nodes inserted into a next frontier, once per node per round",
		}),
		relaxations: f.NewCounter(prometheus.CounterOpts{
			Name: "sssp_edge_relaxations_total",
			Help: "Edges relaxed",
		}),
		rounds: f.NewCounter(prometheus.CounterOpts{
			Name: "sssp_rounds_total",
			Help: "Solver rounds, dense sub-rounds included",
		}),
		solves: f.NewCounter(prometheus.CounterOpts{
			Name: "sssp_solves_total",
			Help: "Completed solves",
		}),
		roundsPerRun: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sssp_rounds_per_solve",
			Help:    "Rounds needed per solve",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16), // 1 to 32768
		}),
		solveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sssp_solve_duration_seconds",
			Help:    "Wall time of a solve",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 18), // 0.1ms to ~13s
		}),
	}
}

// NodeInserted implements sssp.Sink.
func (p *PromSink) NodeInserted(uint32) { p.insertions.Inc() }

// EdgesRelaxed implements sssp.Sink.
func (p *PromSink) EdgesRelaxed(_ uint32, edges int) { p.relaxations.Add(float64(edges)) }

// RoundBoundary implements sssp.Sink.
func (p *PromSink) RoundBoundary() {
	p.rounds.Inc()
	p.open.Add(1)
}

// SolveComplete implements sssp.Sink.
func (p *PromSink) SolveComplete(uint32) {
	p.solves.Inc()
	p.roundsPerRun.Observe(float64(p.open.Swap(0)))
}

// ObserveSolve records the wall time of one solve.
func (p *PromSink) ObserveSolve(d time.Duration) {
	p.solveDuration.Observe(d.Seconds())
}
