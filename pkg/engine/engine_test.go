package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
	"github.com/alleonhardt/Parallel-SSSP/pkg/locate"
	"github.com/alleonhardt/Parallel-SSSP/pkg/sssp"
	"github.com/alleonhardt/Parallel-SSSP/pkg/telemetry"
)

func testGraph(t *testing.T, coords bool) *graph.Graph {
	t.Helper()
	g, err := graph.Build(4, []graph.Edge{
		{From: 0, To: 1, Weight: 100},
		{From: 1, To: 2, Weight: 100},
		{From: 0, To: 2, Weight: 250},
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	if coords {
		g.NodeLat = []float64{1.3000, 1.3009, 1.3018, 1.4000}
		g.NodeLon = []float64{103.8, 103.8, 103.8, 103.8}
	}
	return g
}

func TestSolve(t *testing.T) {
	e, err := New(testGraph(t, false), nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Solve(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{0, 100, 200, sssp.Unreachable}
	for i, d := range want {
		if res.Dist[i] != d {
			t.Errorf("dist[%d] = %d, want %d", i, res.Dist[i], d)
		}
	}
	if res.Stats.Rounds == 0 {
		t.Error("Stats.Rounds = 0")
	}
}

func TestSolveBadSource(t *testing.T) {
	e, err := New(testGraph(t, false), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.Solve(context.Background(), 9)
	if !errors.Is(err, sssp.ErrSourceOutOfRange) {
		t.Fatalf("err = %v, want ErrSourceOutOfRange", err)
	}
}

func TestSolveWaitsForLock(t *testing.T) {
	e, err := New(testGraph(t, false), nil)
	if err != nil {
		t.Fatal(err)
	}
	e.lock <- struct{}{} // simulate a solve in progress

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := e.Solve(ctx, 0); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}

	<-e.lock
	if _, err := e.Solve(context.Background(), 0); err != nil {
		t.Fatalf("Solve after release: %v", err)
	}
}

func TestNearest(t *testing.T) {
	e, err := New(testGraph(t, true), nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := e.Nearest(1.3010, 103.8)
	if err != nil {
		t.Fatal(err)
	}
	if m.Node != 1 {
		t.Errorf("Node = %d, want 1", m.Node)
	}

	plain, err := New(testGraph(t, false), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := plain.Nearest(1.3, 103.8); !errors.Is(err, locate.ErrNoCoordinates) {
		t.Errorf("err = %v, want ErrNoCoordinates", err)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := telemetry.NewPromSink(reg)
	e, err := New(testGraph(t, false), p, sssp.WithAlgorithm(sssp.DeltaStepping), sssp.WithParam(100))
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if _, err := e.Solve(context.Background(), 0); err != nil {
			t.Fatal(err)
		}
	}
	if e.Options().Algorithm != sssp.DeltaStepping {
		t.Errorf("Algorithm = %s", e.Options().Algorithm)
	}

	n, err := testutil.GatherAndCount(reg, "sssp_solves_total")
	if err != nil || n != 1 {
		t.Fatalf("GatherAndCount = %d, %v", n, err)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "sssp_solves_total" {
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 3 {
				t.Errorf("sssp_solves_total = %v, want 3", got)
			}
		}
		if mf.GetName() == "sssp_solve_duration_seconds" {
			if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 3 {
				t.Errorf("duration samples = %d, want 3", got)
			}
		}
	}
}
