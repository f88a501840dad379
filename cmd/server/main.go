package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alleonhardt/Parallel-SSSP/pkg/api"
	"github.com/alleonhardt/Parallel-SSSP/pkg/engine"
	"github.com/alleonhardt/Parallel-SSSP/pkg/ingest"
	"github.com/alleonhardt/Parallel-SSSP/pkg/sssp"
	"github.com/alleonhardt/Parallel-SSSP/pkg/telemetry"
)

func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to the graph (.bin, .adj or .osm.pbf)")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	algoName := flag.String("algorithm", "rho-stepping", "Algorithm: rho-stepping, delta-stepping or bellman-ford")
	param := flag.Uint64("param", sssp.DefaultParam, "Algorithm parameter (rho or delta)")
	workers := flag.Int("workers", 0, "Worker goroutines per solve (0 = GOMAXPROCS)")
	flag.Parse()

	algo, err := sssp.ParseAlgorithm(*algoName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	start := time.Now()

	// Load graph.
	log.Printf("Loading graph from %s...", *graphPath)
	g, err := ingest.Load(context.Background(), *graphPath, ingest.Options{})
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewPromSink(reg)

	log.Println("Building solver and spatial index...")
	eng, err := engine.New(g, metrics,
		sssp.WithAlgorithm(algo),
		sssp.WithParam(*param),
		sssp.WithWorkers(*workers),
	)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	loadTime := time.Since(start)
	log.Printf("Ready in %s", loadTime.Round(time.Millisecond))

	// Setup HTTP server.
	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin
	cfg.Metrics = reg

	stats := api.StatsResponse{
		NumNodes:    g.NumNodes,
		NumEdges:    g.NumEdges,
		Symmetrized: g.Symmetrized,
		Coordinates: g.HasCoordinates(),
		Algorithm:   algo.String(),
		Param:       *param,
	}

	handlers := api.NewHandlers(eng, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
