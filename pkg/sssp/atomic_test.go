package sssp

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
)

func TestWriteMinConcurrentMonotone(t *testing.T) {
	var d atomic.Uint32
	d.Store(Unreachable)

	const writers = 8
	var wg sync.WaitGroup
	stop := make(chan struct{})
	violations := atomic.Int32{}

	// Observer: the slot must never increase.
	observed := make(chan struct{})
	go func() {
		defer close(observed)
		prev := d.Load()
		for {
			select {
			case <-stop:
				return
			default:
			}
			cur := d.Load()
			if cur > prev {
				violations.Add(1)
			}
			prev = cur
		}
	}()

	minWritten := make([]uint32, writers)
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewPCG(uint64(w), 1))
			best := uint32(Unreachable)
			for range 20_000 {
				c := r.Uint32N(1 << 20)
				best = min(best, c)
				writeMin(&d, c)
			}
			minWritten[w] = best
		}()
	}
	wg.Wait()
	close(stop)
	<-observed

	want := minWritten[0]
	for _, m := range minWritten {
		want = min(want, m)
	}
	assert.Equal(t, want, d.Load())
	assert.Zero(t, violations.Load())
}

func TestWriteMinReportsWinner(t *testing.T) {
	var d atomic.Uint32
	d.Store(10)
	assert.False(t, writeMin(&d, 10))
	assert.False(t, writeMin(&d, 11))
	assert.True(t, writeMin(&d, 9))
	assert.Equal(t, uint32(9), d.Load())
}

func TestSatAdd(t *testing.T) {
	assert.Equal(t, uint32(7), satAdd(3, 4))
	assert.Equal(t, uint32(Unreachable), satAdd(Unreachable, 0))
	assert.Equal(t, uint32(Unreachable), satAdd(Unreachable, 5))
	assert.Equal(t, uint32(MaxDist), satAdd(MaxDist, 1))
	assert.Equal(t, uint32(MaxDist), satAdd(MaxDist-1, Unreachable))
}

func TestFlagHelpers(t *testing.T) {
	var f atomic.Uint32
	assert.True(t, setFlag(&f, flagInQueue))
	assert.False(t, setFlag(&f, flagInQueue))
	assert.True(t, setFlag(&f, flagToAdd))
	assert.True(t, hasFlag(&f, flagInQueue))
	assert.True(t, hasFlag(&f, flagToAdd))

	assert.True(t, clearFlag(&f, flagInQueue))
	assert.False(t, clearFlag(&f, flagInQueue))
	assert.True(t, hasFlag(&f, flagToAdd), "clearing one bit must keep the other")

	// Exactly one of many concurrent setters wins.
	var g atomic.Uint32
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if setFlag(&g, flagToAdd) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, wins.Load())
}

func TestClassBounds(t *testing.T) {
	assert.Equal(t, []int{0, minQueue}, classBounds(1))
	assert.Equal(t, []int{0, minQueue}, classBounds(minQueue))

	b := classBounds(5000)
	assert.Equal(t, []int{0, 1024, 2048, 4096, 8192}, b)
	last := len(b) - 1
	assert.GreaterOrEqual(t, b[last]-b[last-1], 5000)
}

func newTestSolver(t *testing.T, n uint32, opts ...Option) *Solver {
	t.Helper()
	g, err := graph.Build(n, nil, true)
	require.NoError(t, err)
	s, err := NewSolver(g, opts...)
	require.NoError(t, err)
	return s
}

func TestSparseQueueAddsEachNodeOnce(t *testing.T) {
	const n = 20_000
	s := newTestSolver(t, n)
	s.init(0)
	q := s.sparse
	q.reset(s.que[1])

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := uint32(0); v < n; v++ {
				q.add((v + uint32(w)*977) % n)
			}
		}()
	}
	wg.Wait()

	seen := make(map[uint32]int)
	for _, v := range s.que[1][:q.size()] {
		if v != emptySlot {
			seen[v]++
		}
	}
	for _, v := range s.que[1][q.size():] {
		require.Equal(t, uint32(emptySlot), v, "entry beyond the active prefix")
	}
	assert.Len(t, seen, n)
	for v, c := range seen {
		require.Equal(t, 1, c, "node %d stored %d times", v, c)
	}
	assert.Greater(t, int(q.class.Load()), 1, "class pointer should have advanced")
}

func TestSparseQueueOverflowPanics(t *testing.T) {
	s := newTestSolver(t, 4)
	s.init(0)
	q := s.sparse
	q.reset(s.que[1])
	// Fill the only class with foreign ids, then insert a real node.
	for i := range q.buf {
		q.buf[i] = 3
	}
	assert.PanicsWithValue(t, "sssp: sparse frontier overflow", func() { q.add(1) })
}

func TestSamplerRank(t *testing.T) {
	sm := newSampler(func(x uint32) uint32 { return x }, DefaultSeeds())
	for i := range sm.dist {
		sm.dist[i] = uint32(i)
	}
	assert.Equal(t, uint32(Unreachable), sm.rank(10, 0, 1))
	assert.Equal(t, uint32(numSamples-1), sm.rank(1000, 10, 1))
	assert.Equal(t, uint32(100), sm.rank(10, 100, 1))
	assert.Equal(t, uint32(10), sm.rank(10, 100, 10))
}

func TestDenseSampleExhaustion(t *testing.T) {
	// An identity hash visits every node exactly once in n draws.
	s := newTestSolver(t, 50, WithHash(func(x uint32) uint32 { return x }))
	s.init(0)
	s.info[7].flags.Store(flagInQueue)
	s.info[7].dist.Store(42)

	est := s.sampler.denseSample(s)
	assert.Equal(t, uint64(1), est)
	assert.Equal(t, uint32(42), s.sampler.dist[0])
	assert.Equal(t, uint32(Unreachable), s.sampler.dist[1])
	assert.Equal(t, uint32(Unreachable), s.sampler.dist[numSamples-1])
}

func TestDensityCutoff(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, uint64(100), o.densityCutoff(100, 50))
	assert.Equal(t, uint64(25), o.densityCutoff(100, 400))

	WithScale(10)(&o)
	assert.Equal(t, uint64(10), o.densityCutoff(100, 400))

	WithDensityCutoff(AlwaysSparse)(&o)
	assert.Equal(t, AlwaysSparse, o.densityCutoff(100, 400))
}
