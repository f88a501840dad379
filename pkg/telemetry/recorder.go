// Package telemetry collects per-round solver metrics. Recorder keeps exact
// per-node counts for offline analysis and is slow; PromSink exports cheap
// aggregate counters.
package telemetry

import (
	"sort"
	"sync"

	"github.com/alleonhardt/Parallel-SSSP/pkg/sssp"
)

// RunMetrics is the record of one solve.
type RunMetrics struct {
	Source      uint32
	StepSizes   []int // distinct nodes inserted per round
	Insertions  map[uint32]uint32
	Reinserts   uint64 // insertions beyond the first, summed over nodes
	Relaxations map[uint32]uint64
}

// TotalRelaxations sums relaxed edges over all nodes.
func (m *RunMetrics) TotalRelaxations() uint64 {
	var total uint64
	for _, c := range m.Relaxations {
		total += c
	}
	return total
}

// Backend persists finished runs.
type Backend interface {
	Dump(m *RunMetrics) error
}

// Recorder is a sssp.Sink that tracks which nodes were inserted in every
// round, how often each node was inserted and how many edges each node
// relaxed. All methods serialise on one mutex.
type Recorder struct {
	mu          sync.Mutex
	rounds      []map[uint32]struct{}
	insertions  map[uint32]uint32
	relaxations map[uint32]uint64

	backend Backend
	last    *RunMetrics
	err     error
}

var _ sssp.Sink = (*Recorder)(nil)

// NewRecorder creates a recorder. backend may be nil.
func NewRecorder(backend Backend) *Recorder {
	r := &Recorder{backend: backend}
	r.Reset()
	return r
}

// NodeInserted implements sssp.Sink.
func (r *Recorder) NodeInserted(v uint32) {
	r.mu.Lock()
	r.rounds[len(r.rounds)-1][v] = struct{}{}
	r.insertions[v]++
	r.mu.Unlock()
}

// EdgesRelaxed implements sssp.Sink.
func (r *Recorder) EdgesRelaxed(v uint32, edges int) {
	r.mu.Lock()
	r.relaxations[v] += uint64(edges)
	r.mu.Unlock()
}

// RoundBoundary implements sssp.Sink.
func (r *Recorder) RoundBoundary() {
	r.mu.Lock()
	r.rounds = append(r.rounds, make(map[uint32]struct{}))
	r.mu.Unlock()
}

// CurrentRoundSize returns the number of distinct nodes inserted so far in
// the open round.
func (r *Recorder) CurrentRoundSize() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rounds[len(r.rounds)-1])
}

// SolveComplete implements sssp.Sink. The run is handed to the backend and
// the recorder is reset for the next solve.
func (r *Recorder) SolveComplete(source uint32) {
	m := r.Snapshot(source)
	var err error
	if r.backend != nil {
		err = r.backend.Dump(m)
	}

	r.mu.Lock()
	r.last = m
	r.err = err
	r.mu.Unlock()
	r.Reset()
}

// Snapshot copies the state collected since the last reset. A trailing
// empty round, opened by the final boundary, is left out.
func (r *Recorder) Snapshot(source uint32) *RunMetrics {
	r.mu.Lock()
	defer r.mu.Unlock()

	rounds := r.rounds
	if len(rounds) > 1 && len(rounds[len(rounds)-1]) == 0 {
		rounds = rounds[:len(rounds)-1]
	}
	m := &RunMetrics{
		Source:      source,
		StepSizes:   make([]int, len(rounds)),
		Insertions:  make(map[uint32]uint32, len(r.insertions)),
		Relaxations: make(map[uint32]uint64, len(r.relaxations)),
	}
	for i, set := range rounds {
		m.StepSizes[i] = len(set)
	}
	for v, c := range r.insertions {
		m.Insertions[v] = c
		m.Reinserts += uint64(c - 1)
	}
	for v, c := range r.relaxations {
		m.Relaxations[v] = c
	}
	return m
}

// Last returns the most recently completed run and the backend error it
// produced, if any.
func (r *Recorder) Last() (*RunMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.err
}

// Reset drops all collected state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.rounds = []map[uint32]struct{}{make(map[uint32]struct{})}
	r.insertions = make(map[uint32]uint32)
	r.relaxations = make(map[uint32]uint64)
	r.mu.Unlock()
}

// MostInserted returns up to k nodes with the highest insertion counts,
// ties broken by id.
func (m *RunMetrics) MostInserted(k int) []uint32 {
	nodes := make([]uint32, 0, len(m.Insertions))
	for v := range m.Insertions {
		nodes = append(nodes, v)
	}
	sort.Slice(nodes, func(i, j int) bool {
		ci, cj := m.Insertions[nodes[i]], m.Insertions[nodes[j]]
		if ci != cj {
			return ci > cj
		}
		return nodes[i] < nodes[j]
	})
	if len(nodes) > k {
		nodes = nodes[:k]
	}
	return nodes
}
