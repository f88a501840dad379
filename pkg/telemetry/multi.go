package telemetry

import "github.com/alleonhardt/Parallel-SSSP/pkg/sssp"

type multi []sssp.Sink

// Multi fans every event out to all non-nil sinks. It returns nil when no
// sink is given, so solvers keep their no-telemetry fast path.
func Multi(sinks ...sssp.Sink) sssp.Sink {
	var m multi
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}

func (m multi) NodeInserted(v uint32) {
	for _, s := range m {
		s.NodeInserted(v)
	}
}

func (m multi) EdgesRelaxed(v uint32, edges int) {
	for _, s := range m {
		s.EdgesRelaxed(v, edges)
	}
}

func (m multi) RoundBoundary() {
	for _, s := range m {
		s.RoundBoundary()
	}
}

func (m multi) SolveComplete(source uint32) {
	for _, s := range m {
		s.SolveComplete(source)
	}
}
