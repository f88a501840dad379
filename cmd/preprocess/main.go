// Command preprocess converts OSM extracts and adjacency files into the
// binary graph format loaded by the other commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/alleonhardt/Parallel-SSSP/pkg/graph"
	"github.com/alleonhardt/Parallel-SSSP/pkg/ingest"
	osmparser "github.com/alleonhardt/Parallel-SSSP/pkg/osm"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf, .adj or .bin file")
	output := flag.String("output", "graph.bin", "Output path; .adj writes the text format, anything else the binary format")
	bbox := flag.String("bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng or a preset (singapore, kl)")
	profile := flag.String("profile", "car", "OSM way profile: car or all")
	largest := flag.Bool("largest", true, "Keep only the largest connected component")
	symmetrize := flag.Bool("symmetrize", false, "Add the reverse of every edge")
	regenerate := flag.Bool("weights", false, "Replace input weights with generated ones")
	minWeight := flag.Uint("min-weight", graph.DefaultMinWeight, "Smallest generated weight")
	maxWeight := flag.Uint("max-weight", graph.DefaultMaxWeight, "Generated weights are below this value")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: preprocess --input <file.osm.pbf|file.adj> [--output graph.bin] [--bbox minLat,minLng,maxLat,maxLng|singapore|kl] [--symmetrize]")
		os.Exit(1)
	}

	opts := ingest.Options{
		MinWeight:         uint32(*minWeight),
		MaxWeight:         uint32(*maxWeight),
		RegenerateWeights: *regenerate,
		Symmetrize:        *symmetrize,
		LargestComponent:  *largest,
	}
	var err error
	if opts.Profile, err = osmparser.ParseProfile(*profile); err != nil {
		log.Fatalf("Invalid profile: %v", err)
	}
	if *bbox != "" {
		if opts.BBox, err = ingest.ParseBBox(*bbox); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]",
			opts.BBox.MinLat, opts.BBox.MaxLat, opts.BBox.MinLng, opts.BBox.MaxLng)
	}

	start := time.Now()

	log.Printf("Loading %s (%s)...", *input, ingest.DetectFormat(*input))
	g, err := ingest.Load(context.Background(), *input, opts)
	if err != nil {
		log.Fatalf("Failed to load input: %v", err)
	}
	log.Printf("Graph: %d nodes, %d edges", g.NumNodes, g.NumEdges)

	log.Printf("Writing %s...", *output)
	if strings.HasSuffix(*output, ".adj") {
		err = writeAdjacency(*output, g)
	} else {
		err = graph.WriteBinary(*output, g)
	}
	if err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	info, _ := os.Stat(*output)
	elapsed := time.Since(start)
	log.Printf("Done in %s. Output: %s (%.1f MB)", elapsed.Round(time.Second), *output, float64(info.Size())/(1024*1024))
}

func writeAdjacency(path string, g *graph.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.WriteAdjacency(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
