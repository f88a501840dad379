// Package ingest loads graphs from any supported input format and applies
// the standard preparation steps.
package ingest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
	osmparser "github.com/alleonhardt/Parallel-SSSP/pkg/osm"
)

// ErrUnknownFormat is returned for inputs whose extension is not recognised.
var ErrUnknownFormat = errors.New("unknown input format")

// Format is an input file format.
type Format int

const (
	FormatUnknown   Format = iota
	FormatBinary           // .bin, written by graph.WriteBinary
	FormatAdjacency        // .adj, PBBS (Weighted)AdjacencyGraph text
	FormatOSM              // .osm.pbf
)

func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatAdjacency:
		return "adjacency"
	case FormatOSM:
		return "osm"
	}
	return "unknown"
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	p := strings.ToLower(path)
	switch {
	case strings.HasSuffix(p, ".bin"):
		return FormatBinary
	case strings.HasSuffix(p, ".adj"):
		return FormatAdjacency
	case strings.HasSuffix(p, ".pbf"):
		return FormatOSM
	}
	return FormatUnknown
}

// Options controls loading. The zero value loads the file as is and only
// generates weights when the input has none.
type Options struct {
	// MinWeight and MaxWeight bound generated weights to [MinWeight,
	// MaxWeight). Zero values select graph.DefaultMinWeight and
	// graph.DefaultMaxWeight.
	MinWeight, MaxWeight uint32
	// RegenerateWeights replaces weights even when the input carries some.
	RegenerateWeights bool
	// Symmetrize adds the reverse of every edge.
	Symmetrize bool
	// LargestComponent keeps only the largest weakly connected component.
	LargestComponent bool

	// OSM only.
	BBox    osmparser.BBox
	Profile osmparser.Profile
}

// Load reads path and prepares the graph as described by opts. The result
// is always weighted.
func Load(ctx context.Context, path string, opts Options) (*graph.Graph, error) {
	g, err := read(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %s: %d nodes, %d edges", path, g.NumNodes, g.NumEdges)

	if opts.LargestComponent && g.NumNodes > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		nodes := graph.LargestComponent(g)
		log.Printf("Largest component: %d nodes (%.1f%%)", len(nodes), float64(len(nodes))/float64(g.NumNodes)*100)
		if g, err = graph.FilterToComponent(g, nodes); err != nil {
			return nil, fmt.Errorf("filter component: %w", err)
		}
	}

	if !g.Weighted || opts.RegenerateWeights {
		lo, hi := opts.MinWeight, opts.MaxWeight
		if lo == 0 {
			lo = graph.DefaultMinWeight
		}
		if hi == 0 {
			hi = graph.DefaultMaxWeight
		}
		if err := graph.GenerateWeights(g, lo, hi); err != nil {
			return nil, err
		}
		log.Printf("Generated weights in [%d, %d)", lo, hi)
	}

	if opts.Symmetrize && !g.Symmetrized {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g, err = graph.Symmetrize(g); err != nil {
			return nil, fmt.Errorf("symmetrize: %w", err)
		}
		log.Printf("Symmetrized: %d edges", g.NumEdges)
	}
	return g, nil
}

func read(ctx context.Context, path string, opts Options) (*graph.Graph, error) {
	switch DetectFormat(path) {
	case FormatBinary:
		return graph.ReadBinary(path)
	case FormatAdjacency:
		return graph.ReadAdjacencyFile(path)
	case FormatOSM:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		res, err := osmparser.Parse(ctx, f, osmparser.ParseOptions{BBox: opts.BBox, Profile: opts.Profile})
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return osmparser.ToGraph(res)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Digest returns the hex SHA-1 of the file at path. Run metrics use it to
// identify the graph they were measured on.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("digest %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
