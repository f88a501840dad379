// Package parallel provides the fork-join loop primitives used by the solver.
//
// Every loop returns only after all of its iterations have finished, so
// consecutive calls form bulk-synchronous phases: writes made inside one loop
// are visible to every iteration of the next.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// chunksPerWorker over-decomposes loops so uneven iterations still balance.
	chunksPerWorker = 8

	// serialCutoff is the loop length below which work runs on the caller.
	serialCutoff = 2048
)

// Pool runs parallel loops on a bounded number of goroutines.
// A Pool has no state besides its width and is safe for concurrent use.
type Pool struct {
	workers int
}

// New returns a Pool with the given width. Non-positive widths use GOMAXPROCS.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the pool width.
func (p *Pool) Workers() int { return p.workers }

// For calls fn(i) for every i in [0, n) with no ordering guarantee.
func (p *Pool) For(n int, fn func(i int)) {
	p.ForRange(n, 1, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i)
		}
	})
}

// ForRange splits [0, n) into contiguous chunks of at least grain iterations
// and calls fn(lo, hi) once per chunk.
func (p *Pool) ForRange(n, grain int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if grain < 1 {
		grain = 1
	}
	if p.workers == 1 || n <= grain || n <= serialCutoff {
		fn(0, n)
		return
	}
	chunk := (n + p.workers*chunksPerWorker - 1) / (p.workers * chunksPerWorker)
	if chunk < grain {
		chunk = grain
	}
	p.run(n, chunk, func(_, lo, hi int) { fn(lo, hi) })
}

// Blocks splits [0, n) into consecutive blocks of exactly block iterations
// (the last one may be shorter) and calls fn(j, lo, hi) for block j.
// Blocks run in parallel when there is more than one.
func (p *Pool) Blocks(n, block int, fn func(j, lo, hi int)) {
	if n <= 0 {
		return
	}
	if block < 1 {
		block = 1
	}
	if n <= block || p.workers == 1 {
		for j, lo := 0, 0; lo < n; j, lo = j+1, lo+block {
			fn(j, lo, min(lo+block, n))
		}
		return
	}
	p.run(n, block, fn)
}

func (p *Pool) run(n, chunk int, fn func(j, lo, hi int)) {
	var g errgroup.Group
	g.SetLimit(p.workers)
	for j, lo := 0, 0; lo < n; j, lo = j+1, lo+chunk {
		j, lo, hi := j, lo, min(lo+chunk, n)
		g.Go(func() error {
			fn(j, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// ScanExclusive replaces a[i] with the sum of a[0..i) and returns the total.
// Blocks are summed in parallel, block offsets are scanned serially, and the
// offsets are then pushed back into each block in parallel.
func (p *Pool) ScanExclusive(a []uint32) uint64 {
	n := len(a)
	if n == 0 {
		return 0
	}
	if n <= serialCutoff || p.workers == 1 {
		return scanSerial(a)
	}

	block := (n + p.workers*chunksPerWorker - 1) / (p.workers * chunksPerWorker)
	sums := make([]uint64, (n+block-1)/block)
	p.run(n, block, func(j, lo, hi int) {
		var s uint64
		for _, v := range a[lo:hi] {
			s += uint64(v)
		}
		sums[j] = s
	})

	var total uint64
	for j, s := range sums {
		sums[j] = total
		total += s
	}

	p.run(n, block, func(j, lo, hi int) {
		run := sums[j]
		for i := lo; i < hi; i++ {
			v := a[i]
			a[i] = uint32(run)
			run += uint64(v)
		}
	})
	return total
}

func scanSerial(a []uint32) uint64 {
	var run uint64
	for i, v := range a {
		a[i] = uint32(run)
		run += uint64(v)
	}
	return run
}

// Hash32 is Bob Jenkins' 32-bit integer mix. It is cheap, deterministic and
// good enough to spread node ids and sampling seeds.
func Hash32(a uint32) uint32 {
	a = (a + 0x7ed55d16) + (a << 12)
	a = (a ^ 0xc761c23c) ^ (a >> 19)
	a = (a + 0x165667b1) + (a << 5)
	a = (a + 0xd3a2646c) ^ (a << 9)
	a = (a + 0xfd7046c5) + (a << 3)
	a = (a ^ 0xb55a4f09) ^ (a >> 16)
	return a
}
