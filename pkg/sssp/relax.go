package sssp

// blockSize is the edge slice length relaxed as one task, and the capacity
// of the worker-local queue used by low-degree batching.
const blockSize = 1024

// relaxEdges relaxes edges [lo, hi) of u and inserts every improved node
// into set. On symmetrized graphs u first pulls the best distance offered
// by the same neighbours.
func (s *Solver) relaxEdges(u, lo, hi uint32, set activeSet) {
	head, weight := s.g.Head[lo:hi], s.g.Weight[lo:hi]
	if s.g.Symmetrized {
		d := s.info[u].dist.Load()
		for i, v := range head {
			d = min(d, satAdd(s.info[v].dist.Load(), weight[i]))
		}
		if writeMin(&s.info[u].dist, d) {
			set.insert(u)
		}
	}

	s.reportEdges(u, hi-lo)
	du := s.info[u].dist.Load()
	for i, v := range head {
		if writeMin(&s.info[v].dist, satAdd(du, weight[i])) {
			set.insert(v)
		}
	}
}

// relaxNode relaxes all out-edges of u, splitting high-degree nodes into
// parallel slices of blockSize edges.
func (s *Solver) relaxNode(u uint32, set activeSet) {
	start, end := s.g.EdgesFrom(u)
	deg := end - start
	if deg < blockSize {
		if deg > 0 {
			s.relaxEdges(u, start, end, set)
		}
		return
	}
	s.pool.Blocks(int(deg), blockSize, func(_, lo, hi int) {
		s.relaxEdges(u, start+uint32(lo), start+uint32(hi), set)
	})
}

// relaxBatch expands f and the low-degree nodes it improves through a
// worker-local queue instead of the shared frontier. Improvements beyond
// the queue capacity, nodes above th and leftovers go to set.
func (s *Solver) relaxBatch(f, th uint32, set activeSet, local []uint32) {
	local = append(local[:0], f)
	front := 0
	for front < len(local) && len(local) < blockSize {
		u := local[front]
		start, end := s.g.EdgesFrom(u)
		if end-start >= blockSize {
			break
		}
		front++
		if u != f && s.info[u].dist.Load() > th {
			set.insert(u)
			continue
		}

		s.reportEdges(u, end-start)
		du := s.info[u].dist.Load()
		for e := start; e < end; e++ {
			v := s.g.Head[e]
			if !writeMin(&s.info[v].dist, satAdd(du, s.g.Weight[e])) {
				continue
			}
			if len(local) < blockSize {
				local = append(local, v)
			} else {
				set.insert(v)
			}
		}
	}
	for _, u := range local[front:] {
		set.insert(u)
	}
}

// relaxSparse runs one sparse round over the compact frontier
// que[cur][0:sz), filling the other buffer.
func (s *Solver) relaxSparse(sz int) {
	q := s.sparse
	q.reset(s.que[1-s.cur])
	frontier := s.que[s.cur][:sz]

	batching := s.opts.LowDegreeBatching && !s.g.Symmetrized &&
		s.sampler.degreeMedian(s, frontier) < blockSize

	var th uint32
	switch s.opts.Algorithm {
	case RhoStepping:
		s.sampler.sparseSample(s, frontier)
		th = s.sampler.rank(s.opts.Param, uint64(sz), 1)
	case DeltaStepping:
		th = s.nextDelta()
	default:
		th = Unreachable
	}

	s.pool.ForRange(sz, 1, func(lo, hi int) {
		var local []uint32
		if batching {
			local = make([]uint32, 0, blockSize)
		}
		for i := lo; i < hi; i++ {
			f := frontier[i]
			frontier[i] = emptySlot
			if s.info[f].dist.Load() > th {
				q.requeue(f)
				continue
			}
			if batching && s.g.Degree(f) < blockSize {
				s.relaxBatch(f, th, q, local)
				continue
			}
			s.relaxNode(f, q)
		}
	})
}

// relaxDense runs one dense round. Sub-rounds re-sample and re-threshold
// while the estimated frontier stays at or above the density cutoff. The
// first sub-round always runs.
func (s *Solver) relaxDense() {
	set := denseSet{s: s}
	n := int(s.g.NumNodes)
	for sub := 1; ; sub++ {
		est := set.estimatedSize()
		if sub > 1 && (est < s.cutoff || est == 0) {
			return
		}

		var th uint32
		switch s.opts.Algorithm {
		case RhoStepping:
			div := uint64(1)
			if sub <= 2 {
				div = 10
			}
			th = s.sampler.rank(s.opts.Param, est, div)
		case DeltaStepping:
			th = s.nextDelta()
		default:
			th = Unreachable
		}

		if sub > 1 {
			s.boundary()
			s.stats.DenseSubRounds++
		}

		s.pool.ForRange(n, 1, func(lo, hi int) {
			for u := uint32(lo); u < uint32(hi); u++ {
				info := &s.info[u]
				if !hasFlag(&info.flags, flagInQueue) || info.dist.Load() > th {
					continue
				}
				// Whoever clears the bit owns the node for this sub-round.
				if clearFlag(&info.flags, flagInQueue) {
					s.relaxNode(u, set)
				}
			}
		})
	}
}

// nextDelta returns the delta-stepping threshold for this (sub-)round and
// advances it by Param.
func (s *Solver) nextDelta() uint32 {
	th := uint32(Unreachable)
	if s.delta < Unreachable {
		th = uint32(s.delta)
	}
	if s.delta <= ^uint64(0)-s.opts.Param {
		s.delta += s.opts.Param
	}
	return th
}
