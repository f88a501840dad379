package graph

import (
	"testing"
)

func TestGenerateWeightsRangeAndSymmetry(t *testing.T) {
	g, err := Build(4, []Edge{
		{From: 0, To: 1}, {From: 1, To: 0},
		{From: 1, To: 2}, {From: 2, To: 1},
		{From: 2, To: 3}, {From: 0, To: 3},
	}, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := GenerateWeights(g, 10, 20); err != nil {
		t.Fatalf("GenerateWeights: %v", err)
	}
	if !g.Weighted || len(g.Weight) != int(g.NumEdges) {
		t.Fatalf("weights not attached: weighted=%v len=%d", g.Weighted, len(g.Weight))
	}
	for i, w := range g.Weight {
		if w < 10 || w >= 20 {
			t.Errorf("Weight[%d] = %d outside [10,20)", i, w)
		}
	}

	weightOf := func(u, v uint32) uint32 {
		heads, weights := g.OutEdges(u)
		for i, h := range heads {
			if h == v {
				return weights[i]
			}
		}
		t.Fatalf("no edge %d->%d", u, v)
		return 0
	}
	if weightOf(0, 1) != weightOf(1, 0) || weightOf(1, 2) != weightOf(2, 1) {
		t.Error("reverse edges received different weights")
	}

	// Deterministic across calls.
	before := append([]uint32(nil), g.Weight...)
	if err := GenerateWeights(g, 10, 20); err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if before[i] != g.Weight[i] {
			t.Fatalf("Weight[%d] changed between runs", i)
		}
	}
}

func TestGenerateWeightsEmptyRange(t *testing.T) {
	g, _ := Build(1, nil, false)
	if err := GenerateWeights(g, 5, 5); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestSymmetrize(t *testing.T) {
	g, err := Build(3, []Edge{
		{From: 0, To: 1, Weight: 5},
		{From: 1, To: 0, Weight: 7},
		{From: 1, To: 2, Weight: 3},
	}, true)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sym, err := Symmetrize(g)
	if err != nil {
		t.Fatalf("Symmetrize: %v", err)
	}
	if !sym.Symmetrized {
		t.Error("Symmetrized flag not set")
	}
	if sym.NumEdges != 4 {
		t.Fatalf("NumEdges = %d, want 4", sym.NumEdges)
	}

	want := []Edge{
		{From: 0, To: 1, Weight: 5},
		{From: 1, To: 0, Weight: 5},
		{From: 1, To: 2, Weight: 3},
		{From: 2, To: 1, Weight: 3},
	}
	for i, e := range Edges(sym) {
		if e != want[i] {
			t.Errorf("edge %d = %+v, want %+v", i, e, want[i])
		}
	}
}
