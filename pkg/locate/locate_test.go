package locate

import (
	"errors"
	"testing"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
)

// Three connected nodes roughly 100 m apart along a street in Singapore,
// plus one isolated node that must never be returned.
func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(4, []graph.Edge{
		{From: 0, To: 1, Weight: 100},
		{From: 1, To: 2, Weight: 100},
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	g.NodeLat = []float64{1.3000, 1.3009, 1.3018, 1.30045}
	g.NodeLon = []float64{103.8000, 103.8000, 103.8000, 103.8000}
	return g
}

func TestNearest(t *testing.T) {
	l, err := New(testGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (isolated node skipped)", l.Len())
	}

	tests := []struct {
		name     string
		lat, lng float64
		want     uint32
	}{
		{"on node", 1.3009, 103.8, 1},
		{"near first", 1.3001, 103.8001, 0},
		{"isolated node ignored", 1.3004, 103.8, 0},
		{"beyond last", 1.3025, 103.8, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := l.Nearest(tt.lat, tt.lng)
			if err != nil {
				t.Fatalf("Nearest: %v", err)
			}
			if m.Node != tt.want {
				t.Errorf("Node = %d, want %d", m.Node, tt.want)
			}
			if m.Dist < 0 || m.Dist > MaxSnapDistMeters {
				t.Errorf("Dist = %f out of range", m.Dist)
			}
		})
	}
}

func TestNearestTooFar(t *testing.T) {
	l, err := New(testGraph(t))
	if err != nil {
		t.Fatal(err)
	}
	// ~1.1 km north of the last node.
	if _, err := l.Nearest(1.3118, 103.8); !errors.Is(err, ErrPointTooFar) {
		t.Errorf("err = %v, want ErrPointTooFar", err)
	}
}

func TestNoCoordinates(t *testing.T) {
	g, err := graph.Build(2, []graph.Edge{{From: 0, To: 1, Weight: 1}}, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(g); !errors.Is(err, ErrNoCoordinates) {
		t.Errorf("err = %v, want ErrNoCoordinates", err)
	}
}
