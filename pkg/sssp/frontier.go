package sssp

import (
	"sync/atomic"
)

const (
	// minQueue is the span of the first sparse size class.
	minQueue = 1 << 10
	// expSamples is the number of sampled hits at which a class counts as
	// half full and the class pointer moves on.
	expSamples = 64
)

// activeSet is the next frontier as seen by the relaxation engine.
type activeSet interface {
	// insert adds v and reports it to the sink.
	insert(v uint32)
	// requeue adds v without telemetry. Used for frontier nodes above the
	// threshold that carry over to the next round.
	requeue(v uint32)
	// estimatedSize returns the current size estimate of the set.
	estimatedSize() uint64
}

// classBounds returns [0, minQueue, 2·minQueue, ...] up to the first bound
// whose class spans at least n slots. The last entry is the buffer length.
func classBounds(n uint32) []int {
	bounds := []int{0, minQueue}
	for last := 1; bounds[last]-bounds[last-1] < int(n); last++ {
		bounds = append(bounds, 2*bounds[last])
	}
	return bounds
}

// sparseQueue fills the next frontier buffer by hashing node ids into the
// active size class. A class is abandoned once sampling shows it half full,
// so the occupied prefix of the buffer stays proportional to the frontier.
type sparseQueue struct {
	s      *Solver
	buf    []uint32
	bounds []int
	counts []atomic.Int64
	class  atomic.Int32
}

func newSparseQueue(s *Solver, bounds []int) *sparseQueue {
	return &sparseQueue{
		s:      s,
		bounds: bounds,
		counts: make([]atomic.Int64, len(bounds)),
	}
}

// reset points q at an all-empty buffer and restarts at the first class.
func (q *sparseQueue) reset(buf []uint32) {
	q.buf = buf
	for i := range q.counts {
		q.counts[i].Store(0)
	}
	q.class.Store(1)
}

// size returns the length of the buffer prefix that may hold entries.
func (q *sparseQueue) size() int {
	return q.bounds[q.class.Load()]
}

func (q *sparseQueue) estimatedSize() uint64 {
	return uint64(q.size())
}

func (q *sparseQueue) insert(v uint32) {
	if q.add(v) {
		q.s.report(v)
	}
}

func (q *sparseQueue) requeue(v uint32) {
	q.add(v)
}

// add claims v's flagToAdd gate and stores v in a free slot of the current
// class. It reports whether v was added by this call.
func (q *sparseQueue) add(v uint32) bool {
	if !setFlag(&q.s.info[v].flags, flagToAdd) {
		return false
	}
	h := q.s.opts.Hash(v)
	class := int(q.class.Load())
	for {
		lo, hi := q.bounds[class-1], q.bounds[class]
		span := hi - lo
		pos := lo + int(h%uint32(span))
		for probe := 0; probe < span; probe++ {
			if atomic.LoadUint32(&q.buf[pos]) == emptySlot && atomic.CompareAndSwapUint32(&q.buf[pos], emptySlot, v) {
				q.sampleHit(class, pos, span)
				return true
			}
			pos++
			if pos == hi {
				pos = lo
			}
		}

		// Class full: move on and retry.
		if class+1 >= len(q.bounds) {
			panic("sssp: sparse frontier overflow")
		}
		q.class.CompareAndSwap(int32(class), int32(class+1))
		class = max(class+1, int(q.class.Load()))
	}
}

// sampleHit counts slots at sampled positions. The class should be half
// occupied when expSamples hits have been seen.
func (q *sparseQueue) sampleHit(class, pos, span int) {
	rate := max(span/(2*expSamples), 1)
	if pos%rate != 0 {
		return
	}
	if q.counts[class].Add(1) == expSamples && class+1 < len(q.bounds) {
		q.class.CompareAndSwap(int32(class), int32(class+1))
	}
}

// denseSet is the dense frontier: the flagInQueue bit of every node.
type denseSet struct {
	s *Solver
}

func (d denseSet) insert(v uint32) {
	if setFlag(&d.s.info[v].flags, flagInQueue) {
		d.s.report(v)
	}
}

func (d denseSet) requeue(v uint32) {
	setFlag(&d.s.info[v].flags, flagInQueue)
}

func (d denseSet) estimatedSize() uint64 {
	return d.s.sampler.denseSample(d.s)
}
