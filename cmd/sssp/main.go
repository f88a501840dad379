// Command sssp benchmarks the parallel shortest-path solvers on one graph.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alleonhardt/Parallel-SSSP/pkg/ingest"
	"github.com/alleonhardt/Parallel-SSSP/pkg/parallel"
	"github.com/alleonhardt/Parallel-SSSP/pkg/sssp"
	"github.com/alleonhardt/Parallel-SSSP/pkg/store"
	"github.com/alleonhardt/Parallel-SSSP/pkg/telemetry"
	"github.com/alleonhardt/Parallel-SSSP/pkg/verify"
)

func main() {
	input := flag.String("i", "", "Input graph (.adj, .bin or .osm.pbf)")
	param := flag.Uint64("p", sssp.DefaultParam, "Algorithm parameter (rho or delta)")
	algoName := flag.String("a", "rho-stepping", "Algorithm: rho-stepping, delta-stepping or bellman-ford")
	symmetrize := flag.Bool("s", false, "Symmetrize the input graph")
	check := flag.Bool("v", false, "Verify every result against sequential Dijkstra")
	rounds := flag.Int("r", 10, "Timed solves per source")
	numSources := flag.Int("n", 1000, "Number of source vertices")
	metricsDir := flag.String("m", "", "Directory of the run-metrics store (enables per-round telemetry)")
	regime := flag.String("g", "unspecified", "Regime label stored with run metrics")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
	batching := flag.Bool("batching", false, "Enable low-degree batching")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: sssp -i <graph> [-p param] [-a algorithm] [-s] [-v] [-r rounds] [-n sources] [-m metrics-dir] [-g regime]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	algo, err := sssp.ParseAlgorithm(*algoName)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *rounds < 1 || *numSources < 1 {
		log.Fatalf("-r and -n must be positive")
	}

	log.Println("Reading graph...")
	g, err := ingest.Load(context.Background(), *input, ingest.Options{Symmetrize: *symmetrize})
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	if g.NumNodes == 0 {
		log.Fatalf("Graph %s has no nodes", *input)
	}

	opts := []sssp.Option{
		sssp.WithAlgorithm(algo),
		sssp.WithParam(*param),
		sssp.WithWorkers(*workers),
		sssp.WithLowDegreeBatching(*batching),
	}
	var sinks []sssp.Sink

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		prom := telemetry.NewPromSink(reg)
		sinks = append(sinks, prom)
		go func() {
			log.Printf("Serving metrics on %s", *metricsAddr)
			err := http.ListenAndServe(*metricsAddr, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	var rec *telemetry.Recorder
	if *metricsDir != "" {
		st, backend, err := openMetrics(*metricsDir, *input, g.NumNodes, g.NumEdges, g.Symmetrized, store.RunInfo{
			Algorithm:  algo.String(),
			Param:      *param,
			Regime:     *regime,
			Processors: parallel.New(*workers).Workers(),
		})
		if err != nil {
			log.Fatalf("Failed to open metrics store: %v", err)
		}
		defer st.Close()
		defer backend.Close()
		rec = telemetry.NewRecorder(backend)
		sinks = append(sinks, rec)
	}

	solver, err := sssp.NewSolver(g, opts...)
	if err != nil {
		log.Fatalf("Failed to create solver: %v", err)
	}
	sink := telemetry.Multi(sinks...)

	log.Printf("Running on %s: |V|=%d, |E|=%d, algorithm=%s, param=%d, num_src=%d, num_round=%d, density_cutoff=%d",
		*input, g.NumNodes, g.NumEdges, algo, *param, *numSources, *rounds, solver.DensityCutoff())

	dist := make([]uint32, g.NumNodes)
	var all []float64
	for v := 0; v < *numSources; v++ {
		s := parallel.Hash32(uint32(v)) % g.NumNodes

		// Warm-up, not timed and not recorded.
		solver.SetSink(nil)
		if err := solver.SolveInto(s, dist); err != nil {
			log.Fatalf("Solve from %d: %v", s, err)
		}
		solver.SetSink(sink)

		times := make([]float64, 0, *rounds)
		for i := 0; i < *rounds; i++ {
			start := time.Now()
			if err := solver.SolveInto(s, dist); err != nil {
				log.Fatalf("Solve from %d: %v", s, err)
			}
			times = append(times, time.Since(start).Seconds())
			if rec != nil {
				if _, err := rec.Last(); err != nil {
					log.Fatalf("Failed to store run metrics: %v", err)
				}
			}
		}
		all = append(all, times...)

		sum := telemetry.Summarize(times)
		stats := solver.LastRun()
		log.Printf("Source %d (%d/%d): median %.6fs, mean %.6fs, rounds %d (%d dense, %d switches)",
			s, v+1, *numSources, sum.Median, sum.Mean, stats.Rounds, stats.DenseRounds, stats.ModeSwitches)

		if *check {
			log.Println("Running verifier...")
			if err := verify.Compare(verify.Dijkstra(g, s), dist); err != nil {
				log.Fatalf("Verification failed for source %d: %v", s, err)
			}
		}
	}

	sum := telemetry.Summarize(all)
	log.Printf("All solves: n=%d mean=%.6fs median=%.6fs stddev=%.6fs q1=%.6fs q3=%.6fs",
		sum.Count, sum.Mean, sum.Median, sum.StdDev, sum.FirstQuartile, sum.ThirdQuartile)
}

// openMetrics opens the store in dir, registers the input graph and
// returns a backend for this benchmark's runs.
func openMetrics(dir, input string, n, m uint32, symmetrized bool, info store.RunInfo) (*store.Store, *store.Backend, error) {
	digest, err := ingest.Digest(input)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	err = st.PutGraph(store.GraphInfo{Digest: digest, Path: input, NumNodes: n, NumEdges: m, Symmetrized: symmetrized})
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	info.GraphDigest = digest
	backend, err := st.Backend(info)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, backend, nil
}
