package sssp

import (
	"math"
	"sync/atomic"
)

const (
	// Unreachable is the distance of nodes the source cannot reach.
	Unreachable = math.MaxUint32
	// MaxDist is the largest finite distance; longer paths saturate to it.
	MaxDist = Unreachable - 1

	// emptySlot marks a free frontier slot. It is never a valid node id.
	emptySlot = math.MaxUint32
)

// Node flag bits.
const (
	flagInQueue = uint32(1) << 0 // member of the dense frontier
	flagToAdd   = uint32(1) << 1 // claimed a slot in the next sparse frontier
)

// nodeInfo is the per-node solver state. dist only ever decreases within a
// solve and is always an upper bound on the true distance.
type nodeInfo struct {
	dist  atomic.Uint32
	flags atomic.Uint32
}

// writeMin lowers *p to cand if cand is smaller and reports whether this
// call performed the update.
func writeMin(p *atomic.Uint32, cand uint32) bool {
	for {
		cur := p.Load()
		if cand >= cur {
			return false
		}
		if p.CompareAndSwap(cur, cand) {
			return true
		}
	}
}

// satAdd returns d+w, keeping Unreachable absorbing and clamping finite
// overflow to MaxDist.
func satAdd(d, w uint32) uint32 {
	if d == Unreachable {
		return Unreachable
	}
	s := uint64(d) + uint64(w)
	if s > MaxDist {
		return MaxDist
	}
	return uint32(s)
}

// setFlag sets bit in *p. Only the caller that flipped the bit sees true.
func setFlag(p *atomic.Uint32, bit uint32) bool {
	for {
		cur := p.Load()
		if cur&bit != 0 {
			return false
		}
		if p.CompareAndSwap(cur, cur|bit) {
			return true
		}
	}
}

// clearFlag clears bit in *p. Only the caller that flipped the bit sees true.
func clearFlag(p *atomic.Uint32, bit uint32) bool {
	for {
		cur := p.Load()
		if cur&bit == 0 {
			return false
		}
		if p.CompareAndSwap(cur, cur&^bit) {
			return true
		}
	}
}

func hasFlag(p *atomic.Uint32, bit uint32) bool {
	return p.Load()&bit != 0
}
