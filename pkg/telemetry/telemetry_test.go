package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
	"github.com/alleonhardt/Parallel-SSSP/pkg/sssp"
)

type memBackend struct {
	runs []*RunMetrics
	err  error
}

func (b *memBackend) Dump(m *RunMetrics) error {
	b.runs = append(b.runs, m)
	return b.err
}

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(6, []graph.Edge{
		{From: 0, To: 1, Weight: 2},
		{From: 0, To: 2, Weight: 5},
		{From: 1, To: 2, Weight: 1},
		{From: 1, To: 3, Weight: 3},
		{From: 2, To: 4, Weight: 1},
		{From: 3, To: 4, Weight: 9},
	}, true)
	require.NoError(t, err)
	return g
}

func TestRecorderCollectsRun(t *testing.T) {
	backend := &memBackend{}
	rec := NewRecorder(backend)

	s, err := sssp.NewSolver(testGraph(t), sssp.WithSink(rec))
	require.NoError(t, err)
	_, err = s.Solve(0)
	require.NoError(t, err)

	require.Len(t, backend.runs, 1)
	m := backend.runs[0]
	stats := s.LastRun()

	assert.Equal(t, uint32(0), m.Source)
	assert.Len(t, m.StepSizes, stats.Rounds+stats.DenseSubRounds)
	assert.Equal(t, 3, m.StepSizes[0], "source plus its two out-neighbours")
	assert.Equal(t, uint32(1), m.Insertions[0])
	assert.NotContains(t, m.Insertions, uint32(5), "node 5 is unreachable")
	assert.Equal(t, uint64(2), m.Relaxations[0])
	assert.GreaterOrEqual(t, m.TotalRelaxations(), uint64(6))

	var extra uint64
	for _, c := range m.Insertions {
		extra += uint64(c - 1)
	}
	assert.Equal(t, extra, m.Reinserts)

	last, err := rec.Last()
	require.NoError(t, err)
	assert.Same(t, m, last)
	assert.Zero(t, rec.CurrentRoundSize(), "recorder resets after a solve")
}

func TestRecorderKeepsBackendError(t *testing.T) {
	boom := errors.New("disk full")
	rec := NewRecorder(&memBackend{err: boom})
	rec.NodeInserted(4)
	rec.SolveComplete(4)

	_, err := rec.Last()
	assert.ErrorIs(t, err, boom)
}

func TestRecorderSnapshotRounds(t *testing.T) {
	rec := NewRecorder(nil)
	rec.NodeInserted(1)
	rec.NodeInserted(1)
	rec.NodeInserted(2)
	rec.RoundBoundary()
	rec.NodeInserted(1)
	rec.EdgesRelaxed(1, 3)
	rec.EdgesRelaxed(1, 4)
	rec.RoundBoundary()

	m := rec.Snapshot(9)
	assert.Equal(t, []int{2, 1}, m.StepSizes)
	assert.Equal(t, uint32(3), m.Insertions[1])
	assert.Equal(t, uint64(2), m.Reinserts)
	assert.Equal(t, uint64(7), m.Relaxations[1])
	assert.Equal(t, []uint32{1, 2}, m.MostInserted(5))
	assert.Equal(t, []uint32{1}, m.MostInserted(1))
}

func TestMulti(t *testing.T) {
	assert.Nil(t, Multi(nil, nil))

	rec := NewRecorder(nil)
	assert.Same(t, rec, Multi(nil, rec))

	a, b := NewRecorder(nil), NewRecorder(nil)
	m := Multi(a, nil, b)
	m.NodeInserted(3)
	m.EdgesRelaxed(3, 2)
	assert.Equal(t, 1, a.CurrentRoundSize())
	assert.Equal(t, 1, b.CurrentRoundSize())
	m.RoundBoundary()
	assert.Zero(t, a.CurrentRoundSize())
}

func TestPromSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPromSink(reg)

	s, err := sssp.NewSolver(testGraph(t), sssp.WithSink(p))
	require.NoError(t, err)
	_, err = s.Solve(0)
	require.NoError(t, err)
	p.ObserveSolve(3 * time.Millisecond)

	stats := s.LastRun()
	assert.Equal(t, 1.0, testutil.ToFloat64(p.solves))
	assert.Equal(t, float64(stats.Rounds+stats.DenseSubRounds), testutil.ToFloat64(p.rounds))
	assert.GreaterOrEqual(t, testutil.ToFloat64(p.insertions), 5.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(p.relaxations), 6.0)
	assert.Zero(t, p.open.Load())

	n, err := testutil.GatherAndCount(reg, "sssp_rounds_per_solve", "sssp_solve_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	vals := []float64{4, 1, 3, 2}
	s := Summarize(vals)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 10.0, s.Sum)
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 2.0, s.FirstQuartile)
	assert.Equal(t, 4.0, s.ThirdQuartile)
	assert.InDelta(t, 1.118, s.StdDev, 1e-3)
	assert.Equal(t, []float64{4, 1, 3, 2}, vals, "input must not be reordered")

	one := Summarize([]float64{7})
	assert.Equal(t, 7.0, one.Median)
	assert.Equal(t, 7.0, one.ThirdQuartile)
	assert.Zero(t, one.StdDev)
}
