package sssp

import (
	"fmt"
	"math"

	"github.com/alleonhardt/Parallel-SSSP/pkg/parallel"
)

// Algorithm selects the threshold policy of the solver.
type Algorithm int

const (
	// RhoStepping picks th from sampled frontier distances so that about
	// Param nodes are relaxed per round.
	RhoStepping Algorithm = iota

	// DeltaStepping raises th by Param every round.
	DeltaStepping

	// BellmanFord relaxes every frontier node every round.
	BellmanFord
)

var algorithmNames = [...]string{
	RhoStepping:   "rho-stepping",
	DeltaStepping: "delta-stepping",
	BellmanFord:   "bellman-ford",
}

// String returns the command-line name of a.
func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm maps "rho-stepping", "delta-stepping" or "bellman-ford" to
// its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for a, n := range algorithmNames {
		if n == name {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// DefaultParam is the rho / delta used when none is given.
const DefaultParam = 1 << 21

// Density cutoffs for WithDensityCutoff.
const (
	// AlwaysDense keeps the frontier dense after the first round.
	AlwaysDense uint64 = 0
	// AlwaysSparse never switches to the dense representation.
	AlwaysSparse uint64 = math.MaxUint64
)

// Seeds are the starting counters of the three samplers. They are restored
// at the start of every solve so repeated solves sample identically.
type Seeds struct {
	Degree uint32
	Sparse uint32
	Dense  uint32
}

// DefaultSeeds returns the stock sampler seeds.
func DefaultSeeds() Seeds {
	return Seeds{Degree: 353442899, Sparse: 998244353, Dense: 10086}
}

// Options configures a Solver.
//
// Algorithm         – threshold policy. Default RhoStepping.
// Param             – rho or delta. Must be ≥ 1 unless Algorithm is BellmanFord.
// Scale             – density scale; the frontier turns dense at n/Scale
//
//	nodes. Zero derives max(1, m/n) from the graph.
//
// Workers           – parallel width. Zero uses GOMAXPROCS.
// LowDegreeBatching – expand chains of low-degree nodes in a worker-local
//
//	queue. Ignored on symmetrized graphs.
//
// Sink              – optional telemetry receiver.
// Hash, Seeds       – sampling hash and seeds.
type Options struct {
	Algorithm         Algorithm
	Param             uint64
	Scale             uint64
	Workers           int
	LowDegreeBatching bool
	Sink              Sink
	Hash              func(uint32) uint32
	Seeds             Seeds

	cutoff    uint64
	hasCutoff bool
}

// DefaultOptions returns the options NewSolver starts from.
func DefaultOptions() Options {
	return Options{
		Algorithm: RhoStepping,
		Param:     DefaultParam,
		Hash:      parallel.Hash32,
		Seeds:     DefaultSeeds(),
	}
}

// Option customizes Options.
type Option func(*Options)

// WithAlgorithm selects the threshold policy.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) { o.Algorithm = a }
}

// WithParam sets rho (rho-stepping) or delta (delta-stepping).
func WithParam(p uint64) Option {
	return func(o *Options) { o.Param = p }
}

// WithScale overrides the density scale.
func WithScale(scale uint64) Option {
	return func(o *Options) { o.Scale = scale }
}

// WithDensityCutoff fixes the sparse/dense switch point in nodes, overriding
// the scale. Use AlwaysDense or AlwaysSparse to pin one representation.
func WithDensityCutoff(cutoff uint64) Option {
	return func(o *Options) {
		o.cutoff = cutoff
		o.hasCutoff = true
	}
}

// WithWorkers sets the parallel width.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLowDegreeBatching toggles worker-local expansion of low-degree nodes.
func WithLowDegreeBatching(enabled bool) Option {
	return func(o *Options) { o.LowDegreeBatching = enabled }
}

// WithSink attaches a telemetry sink.
func WithSink(s Sink) Option {
	return func(o *Options) { o.Sink = s }
}

// WithHash replaces the sampling and slot hash.
func WithHash(h func(uint32) uint32) Option {
	return func(o *Options) { o.Hash = h }
}

// WithSeeds replaces the sampler seeds.
func WithSeeds(s Seeds) Option {
	return func(o *Options) { o.Seeds = s }
}

// densityCutoff resolves the sparse/dense switch point for a graph.
func (o *Options) densityCutoff(n, m uint32) uint64 {
	if o.hasCutoff {
		return o.cutoff
	}
	scale := o.Scale
	if scale == 0 {
		scale = 1
		if n > 0 && m/n > 1 {
			scale = uint64(m / n)
		}
	}
	return uint64(n) / scale
}
