package sssp

import (
	"slices"
)

// numSamples is the number of draws taken by every estimator.
const numSamples = 1000

// sampler draws deterministic samples of the frontier. Each estimator
// advances its own seed counter.
type sampler struct {
	hash  func(uint32) uint32
	seeds Seeds

	degreeSeed uint32
	sparseSeed uint32
	denseSeed  uint32

	dist []uint32 // sorted distance samples of the latest draw
	deg  []uint32
}

func newSampler(hash func(uint32) uint32, seeds Seeds) *sampler {
	sm := &sampler{
		hash:  hash,
		seeds: seeds,
		dist:  make([]uint32, numSamples),
		deg:   make([]uint32, numSamples),
	}
	sm.reset()
	return sm
}

func (sm *sampler) reset() {
	sm.degreeSeed = sm.seeds.Degree
	sm.sparseSeed = sm.seeds.Sparse
	sm.denseSeed = sm.seeds.Dense
}

// degreeMedian samples out-degrees of the sparse frontier and returns their
// median.
func (sm *sampler) degreeMedian(s *Solver, frontier []uint32) uint32 {
	sz := uint32(len(frontier))
	for i := range sm.deg {
		sm.deg[i] = s.g.Degree(frontier[sm.hash(sm.degreeSeed)%sz])
		sm.degreeSeed++
	}
	slices.Sort(sm.deg)
	return sm.deg[numSamples/2]
}

// sparseSample samples distances of the sparse frontier.
func (sm *sampler) sparseSample(s *Solver, frontier []uint32) {
	sz := uint32(len(frontier))
	for i := range sm.dist {
		sm.dist[i] = s.info[frontier[sm.hash(sm.sparseSeed)%sz]].dist.Load()
		sm.sparseSeed++
	}
	slices.Sort(sm.dist)
}

// denseSample draws nodes from [0,n), keeping those in the dense frontier,
// and returns the estimated frontier size. After n draws it gives up, pads
// the missing samples with Unreachable and returns the number of hits.
func (sm *sampler) denseSample(s *Solver) uint64 {
	n := uint64(s.g.NumNodes)
	var draws uint64
	for i := 0; i < numSamples; {
		u := sm.hash(sm.denseSeed) % uint32(n)
		sm.denseSeed++
		draws++
		if hasFlag(&s.info[u].flags, flagInQueue) {
			sm.dist[i] = s.info[u].dist.Load()
			i++
			if i == numSamples {
				break
			}
		}
		if draws >= n {
			for k := i; k < numSamples; k++ {
				sm.dist[k] = Unreachable
			}
			slices.Sort(sm.dist)
			return uint64(i)
		}
	}
	slices.Sort(sm.dist)
	return uint64(float64(numSamples) / float64(draws) * float64(n))
}

// rank returns the sample at index numSamples*param/size/div, clamped to
// the last sample.
func (sm *sampler) rank(param, size, div uint64) uint32 {
	if size == 0 {
		return Unreachable
	}
	idx := uint64(numSamples - 1)
	if param < size*div {
		idx = min(idx, numSamples*param/(size*div))
	}
	return sm.dist[idx]
}
