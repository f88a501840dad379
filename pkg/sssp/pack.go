package sssp

// pack compacts the frontier produced by the last relax step, picks the
// representation for the next round and swaps the buffers. It returns the
// exact size of the next frontier.
func (s *Solver) pack() uint64 {
	var total uint64
	if s.mode == modeSparse {
		total = s.packSparse()
	} else {
		total = s.packDense()
	}
	s.cur = 1 - s.cur
	return total
}

// packSparse compacts the hashed buffer. Below the cutoff the ids are
// gathered to the front of the buffer; otherwise they become dense flags.
// Either way every slot is emptied and flagToAdd cleared.
func (s *Solver) packSparse() uint64 {
	next := s.que[1-s.cur]
	size := s.sparse.size()
	occupied := s.scan[:size]

	s.pool.ForRange(size, 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			occupied[i] = 0
			if next[i] != emptySlot {
				occupied[i] = 1
			}
		}
	})
	total := s.pool.ScanExclusive(occupied)

	if total < s.cutoff {
		gather := s.gather
		s.pool.ForRange(size, 1, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				u := next[i]
				if u == emptySlot {
					continue
				}
				next[i] = emptySlot
				clearFlag(&s.info[u].flags, flagToAdd)
				gather[occupied[i]] = u
			}
		})
		s.pool.ForRange(int(total), 1, func(lo, hi int) {
			copy(next[lo:hi], gather[lo:hi])
		})
		return total
	}

	s.pool.ForRange(size, 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			u := next[i]
			if u == emptySlot {
				continue
			}
			next[i] = emptySlot
			flags := &s.info[u].flags
			setFlag(flags, flagInQueue)
			clearFlag(flags, flagToAdd)
		}
	})
	s.mode = modeDense
	return total
}

// packDense counts the dense frontier exactly. Below the cutoff the flags
// are cleared and the ids written compactly into the next buffer.
func (s *Solver) packDense() uint64 {
	n := int(s.g.NumNodes)
	member := s.scan[:n]

	s.pool.ForRange(n, 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			member[i] = 0
			if hasFlag(&s.info[i].flags, flagInQueue) {
				member[i] = 1
			}
		}
	})
	total := s.pool.ScanExclusive(member)

	if total < s.cutoff {
		next := s.que[1-s.cur]
		s.pool.ForRange(n, 1, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				if clearFlag(&s.info[i].flags, flagInQueue) {
					next[member[i]] = uint32(i)
				}
			}
		})
		s.mode = modeSparse
	}
	return total
}
