// Package sssp computes single-source shortest paths on large weighted
// directed graphs with a family of work-efficient parallel algorithms:
// rho-stepping, delta-stepping and a threshold-free Bellman-Ford variant.
//
// Every algorithm runs the same bulk-synchronous loop. A round relaxes the
// out-edges of the frontier nodes whose tentative distance is at most a
// threshold th, inserts every improved neighbour into the next frontier and
// requeues the rest. The algorithms differ only in how th is chosen:
//
//	– rho-stepping:   th is read from a sorted sample of frontier distances so
//	                  that about Param nodes fall at or below it.
//	– delta-stepping: th grows by Param every round, starting at Param.
//	– bellman-ford:   th is infinite, every frontier node is relaxed.
//
// The frontier switches between two representations depending on its size.
// Small frontiers are sparse: node ids hashed into a buffer of power-of-two
// size classes whose fill level is tracked by sampling. Large frontiers are
// dense: a bit in each node's flag word, processed by scanning every node.
// The switch happens when the compacted size crosses n/scale, where scale
// defaults to the average degree.
//
// Concurrency:
//
//	Distances only decrease, through an atomic compare-and-swap write-min.
//	Flags live in one atomic word per node. There are no locks in the solver.
//	A Solver is not safe for concurrent Solve calls; use one per goroutine.
//
// Errors (sentinel):
//
//	– ErrNilGraph         if the graph pointer is nil.
//	– ErrUnweightedGraph  if the graph carries no weights.
//	– ErrSourceOutOfRange if the source is not a node of the graph.
//	– ErrBadParam         if Param is zero for rho- or delta-stepping.
//	– ErrShortBuffer      if SolveInto gets a slice shorter than NumNodes.
//
// Example usage:
//
//	s, err := sssp.NewSolver(g, sssp.WithAlgorithm(sssp.DeltaStepping), sssp.WithParam(1<<15))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dist, err := s.Solve(0)
package sssp
