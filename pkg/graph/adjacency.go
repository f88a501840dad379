package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Headers of the PBBS adjacency text formats.
const (
	adjHeader         = "AdjacencyGraph"
	weightedAdjHeader = "WeightedAdjacencyGraph"
)

// ReadAdjacencyFile reads a PBBS adjacency graph from path.
func ReadAdjacencyFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return ReadAdjacency(f)
}

// ReadAdjacency parses the PBBS AdjacencyGraph / WeightedAdjacencyGraph text
// format: a header line, n, m, n offsets, m heads and, for the weighted
// variant, m weights. Tokens may be separated by any whitespace.
func ReadAdjacency(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	if !sc.Scan() {
		return nil, fmt.Errorf("read header: %w", scanErr(sc))
	}
	var weighted bool
	switch sc.Text() {
	case adjHeader:
	case weightedAdjHeader:
		weighted = true
	default:
		return nil, fmt.Errorf("%w: unknown header %q", ErrInvalidGraph, sc.Text())
	}

	next := func(what string) (uint32, error) {
		if !sc.Scan() {
			return 0, fmt.Errorf("read %s: %w", what, scanErr(sc))
		}
		v, err := strconv.ParseUint(sc.Text(), 10, 32)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", what, err)
		}
		return uint32(v), nil
	}

	n, err := next("n")
	if err != nil {
		return nil, err
	}
	m, err := next("m")
	if err != nil {
		return nil, err
	}
	if n > maxNodes || m > maxEdges {
		return nil, fmt.Errorf("%w: n=%d m=%d exceeds limits", ErrInvalidGraph, n, m)
	}

	firstOut := make([]uint32, n+1)
	for i := range n {
		if firstOut[i], err = next("offset"); err != nil {
			return nil, err
		}
	}
	firstOut[n] = m

	head := make([]uint32, m)
	for i := range m {
		if head[i], err = next("edge"); err != nil {
			return nil, err
		}
	}

	var weight []uint32
	if weighted {
		weight = make([]uint32, m)
		for i := range m {
			if weight[i], err = next("weight"); err != nil {
				return nil, err
			}
		}
	}

	g := &Graph{
		NumNodes: n,
		NumEdges: m,
		FirstOut: firstOut,
		Head:     head,
		Weight:   weight,
		Weighted: weighted,
	}
	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

func scanErr(sc *bufio.Scanner) error {
	if err := sc.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}

// WriteAdjacency writes g in the PBBS text format. Weighted graphs use the
// WeightedAdjacencyGraph header.
func WriteAdjacency(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	header := adjHeader
	if g.Weighted {
		header = weightedAdjHeader
	}

	buf := make([]byte, 0, 16)
	line := func(v uint32) {
		buf = strconv.AppendUint(buf[:0], uint64(v), 10)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	bw.WriteString(header)
	bw.WriteByte('\n')
	line(g.NumNodes)
	line(g.NumEdges)
	for _, off := range g.FirstOut[:g.NumNodes] {
		line(off)
	}
	for _, h := range g.Head {
		line(h)
	}
	if g.Weighted {
		for _, wt := range g.Weight {
			line(wt)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write adjacency: %w", err)
	}
	return nil
}
