package verify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
)

// 0 -1-> 1 -1-> 2, 0 -5-> 2, 3 isolated.
func lineGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(4, []graph.Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 1, To: 2, Weight: 1},
		{From: 0, To: 2, Weight: 5},
	}, true)
	require.NoError(t, err)
	return g
}

func TestMinHeapOrder(t *testing.T) {
	var h MinHeap
	for _, d := range []uint32{5, 1, 9, 3, 7} {
		h.Push(d, d)
	}
	assert.Equal(t, uint32(1), h.PeekDist())

	var got []uint32
	for h.Len() > 0 {
		got = append(got, h.Pop().Dist)
	}
	assert.Equal(t, []uint32{1, 3, 5, 7, 9}, got)
	assert.Equal(t, uint32(math.MaxUint32), h.PeekDist())
}

func TestDijkstra(t *testing.T) {
	dist := Dijkstra(lineGraph(t), 0)
	assert.Equal(t, []uint32{0, 1, 2, math.MaxUint32}, dist)
}

func TestDijkstraSaturates(t *testing.T) {
	g, err := graph.Build(3, []graph.Edge{
		{From: 0, To: 1, Weight: math.MaxUint32 - 1},
		{From: 1, To: 2, Weight: 10},
	}, true)
	require.NoError(t, err)

	dist := Dijkstra(g, 0)
	assert.Equal(t, uint32(math.MaxUint32-1), dist[1])
	assert.Equal(t, uint32(math.MaxUint32-1), dist[2])
	assert.NoError(t, Check(g, 0, dist))
}

func TestCompare(t *testing.T) {
	assert.NoError(t, Compare([]uint32{1, 2}, []uint32{1, 2}))
	assert.ErrorIs(t, Compare([]uint32{1, 2}, []uint32{1, 3}), ErrMismatch)
	assert.ErrorIs(t, Compare([]uint32{1}, []uint32{1, 3}), ErrLengthMismatch)
}

func TestCheck(t *testing.T) {
	g := lineGraph(t)
	tests := []struct {
		name string
		dist []uint32
		want error
	}{
		{"correct", []uint32{0, 1, 2, math.MaxUint32}, nil},
		{"source not zero", []uint32{1, 1, 2, math.MaxUint32}, ErrBadSource},
		{"edge still relaxes", []uint32{0, 1, 5, math.MaxUint32}, ErrNotRelaxed},
		{"too small", []uint32{0, 1, 1, math.MaxUint32}, ErrUnsupported},
		{"phantom reachable", []uint32{0, 1, 2, 7}, ErrUnsupported},
		{"missed node", []uint32{0, math.MaxUint32, 5, math.MaxUint32}, ErrNotRelaxed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(g, 0, tt.dist)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
