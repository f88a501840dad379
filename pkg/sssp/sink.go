package sssp

import "sync/atomic"

// Sink receives solver telemetry. Implementations must accept concurrent
// NodeInserted and EdgesRelaxed calls; RoundBoundary and SolveComplete are
// only called between parallel phases.
type Sink interface {
	// NodeInserted reports that v joined the next frontier. It fires at most
	// once per node per round.
	NodeInserted(v uint32)
	// EdgesRelaxed reports a batch of relaxed out-edges of v.
	EdgesRelaxed(v uint32, edges int)
	// RoundBoundary closes the current round.
	RoundBoundary()
	// SolveComplete closes a solve from source.
	SolveComplete(source uint32)
}

// SetSink attaches s (nil detaches) for subsequent solves.
func (s *Solver) SetSink(sink Sink) {
	s.sink = sink
	if sink != nil && s.stamp == nil {
		s.stamp = make([]atomic.Uint32, s.g.NumNodes)
	}
}

// report forwards the first insertion of v in the current round.
func (s *Solver) report(v uint32) {
	if s.sink == nil {
		return
	}
	if s.stamp[v].Swap(s.epoch) != s.epoch {
		s.sink.NodeInserted(v)
	}
}

func (s *Solver) reportEdges(v uint32, edges uint32) {
	if s.sink != nil {
		s.sink.EdgesRelaxed(v, int(edges))
	}
}

// boundary starts a new round. Must run between parallel phases.
func (s *Solver) boundary() {
	s.epoch++
	if s.sink != nil {
		s.sink.RoundBoundary()
	}
}
