package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
)

// Two components: 0-1-2 (three nodes) and 3-4.
func writeAdj(t *testing.T, weighted bool) string {
	t.Helper()
	g, err := graph.Build(5, []graph.Edge{
		{From: 0, To: 1, Weight: 3},
		{From: 1, To: 2, Weight: 4},
		{From: 3, To: 4, Weight: 5},
	}, weighted)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "g.adj")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := graph.WriteAdjacency(f, g); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a/graph.bin":       FormatBinary,
		"g.ADJ":             FormatAdjacency,
		"singapore.osm.pbf": FormatOSM,
		"notes.txt":         FormatUnknown,
		"no-extension":      FormatUnknown,
	}
	for path, want := range tests {
		if got := DetectFormat(path); got != want {
			t.Errorf("DetectFormat(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestLoadUnweightedAdjacencyGeneratesWeights(t *testing.T) {
	g, err := Load(context.Background(), writeAdj(t, false), Options{MinWeight: 10, MaxWeight: 20})
	if err != nil {
		t.Fatal(err)
	}
	if !g.Weighted {
		t.Fatal("graph not weighted")
	}
	for e, w := range g.Weight {
		if w < 10 || w >= 20 {
			t.Errorf("weight[%d] = %d, want in [10,20)", e, w)
		}
	}
}

func TestLoadKeepsWeights(t *testing.T) {
	g, err := Load(context.Background(), writeAdj(t, true), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if g.NumEdges != 3 || g.Weight[0] != 3 {
		t.Errorf("edges = %d, weight[0] = %d; want 3 edges, weight 3", g.NumEdges, g.Weight[0])
	}
}

func TestLoadComponentAndSymmetrize(t *testing.T) {
	g, err := Load(context.Background(), writeAdj(t, true), Options{
		LargestComponent: true,
		Symmetrize:       true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.NumNodes != 3 {
		t.Errorf("NumNodes = %d, want 3", g.NumNodes)
	}
	if g.NumEdges != 4 {
		t.Errorf("NumEdges = %d, want 4", g.NumEdges)
	}
	if !g.Symmetrized {
		t.Error("Symmetrized not set")
	}
}

func TestLoadBinaryRoundTrip(t *testing.T) {
	src, err := Load(context.Background(), writeAdj(t, true), Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "g.bin")
	if err := graph.WriteBinary(path, src); err != nil {
		t.Fatal(err)
	}
	g, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if g.NumNodes != src.NumNodes || g.NumEdges != src.NumEdges {
		t.Errorf("got %d/%d, want %d/%d", g.NumNodes, g.NumEdges, src.NumNodes, src.NumEdges)
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	_, err := Load(context.Background(), "graph.csv", Options{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestDigest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	os.WriteFile(a, []byte("AdjacencyGraph\n1\n0\n0\n"), 0o644)
	os.WriteFile(b, []byte("AdjacencyGraph\n1\n0\n0\n"), 0o644)

	da, err := Digest(a)
	if err != nil {
		t.Fatal(err)
	}
	db, err := Digest(b)
	if err != nil {
		t.Fatal(err)
	}
	if da != db || len(da) != 40 {
		t.Errorf("digests %q / %q: want equal 40-char hex", da, db)
	}

	if _, err := Digest(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseBBox(t *testing.T) {
	b, err := ParseBBox("singapore")
	if err != nil || b.MinLat != 1.15 {
		t.Errorf("preset: %+v, %v", b, err)
	}
	b, err = ParseBBox("1.0,100.0,2.0,101.5")
	if err != nil {
		t.Fatal(err)
	}
	if b.MinLat != 1.0 || b.MinLng != 100.0 || b.MaxLat != 2.0 || b.MaxLng != 101.5 {
		t.Errorf("bbox = %+v", b)
	}
	for _, bad := range []string{"1,2,3", "2,100,1,101", "paris"} {
		if _, err := ParseBBox(bad); err == nil {
			t.Errorf("ParseBBox(%q) succeeded, want error", bad)
		}
	}
}
