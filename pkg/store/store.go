// Package store persists solver run metrics in a Badger key-value store.
//
// Key layout:
//
//	graph/<digest>            GraphInfo
//	run/<id:020>              Execution
//	step/<id:020>/<step:010>  Step
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/alleonhardt/Parallel-SSSP/pkg/telemetry"
)

var (
	ErrUnknownGraph = errors.New("store: graph not registered")
	ErrNotFound     = errors.New("store: not found")
)

var runSeqKey = []byte("seq/run")

// GraphInfo identifies a graph by the digest of its input file.
type GraphInfo struct {
	Digest      string `json:"digest"`
	Path        string `json:"path"`
	NumNodes    uint32 `json:"num_nodes"`
	NumEdges    uint32 `json:"num_edges"`
	Symmetrized bool   `json:"symmetrized"`
}

// RunInfo describes the configuration shared by all solves dumped through
// one Backend.
type RunInfo struct {
	GraphDigest string `json:"graph_digest"`
	Algorithm   string `json:"algorithm"`
	Param       uint64 `json:"param"`
	Regime      string `json:"regime,omitempty"`
	Processors  int    `json:"processors"`
}

// Execution is one stored solve.
type Execution struct {
	ID uint64 `json:"id"`
	RunInfo
	Source      uint32    `json:"source"`
	Reinserts   uint64    `json:"reinserts"`
	Rounds      int       `json:"rounds"`
	Relaxations uint64    `json:"relaxations"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Step is the number of distinct nodes inserted in one round.
type Step struct {
	Step          int `json:"step"`
	TotalVertices int `json:"total_vertices"`
}

// Store wraps an open Badger database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	return open(badger.DefaultOptions(dir).WithLogger(nil))
}

// OpenInMemory opens a store that lives only in memory.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func graphKey(digest string) []byte { return []byte("graph/" + digest) }
func runKey(id uint64) []byte       { return fmt.Appendf(nil, "run/%020d", id) }
func stepPrefix(id uint64) []byte   { return fmt.Appendf(nil, "step/%020d/", id) }
func stepKey(id uint64, step int) []byte {
	return fmt.Appendf(stepPrefix(id), "%010d", step)
}

// PutGraph registers a graph, replacing any earlier record with the same
// digest.
func (s *Store) PutGraph(info GraphInfo) error {
	val, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(graphKey(info.Digest), val)
	})
}

// Graph returns the graph registered under digest.
func (s *Store) Graph(digest string) (GraphInfo, error) {
	var info GraphInfo
	err := s.get(graphKey(digest), &info)
	return info, err
}

// Execution returns the execution with the given id.
func (s *Store) Execution(id uint64) (Execution, error) {
	var ex Execution
	err := s.get(runKey(id), &ex)
	return ex, err
}

func (s *Store) get(key []byte, v any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return err
}

// Executions returns all stored executions ordered by id.
func (s *Store) Executions() ([]Execution, error) {
	var out []Execution
	err := s.scan([]byte("run/"), func(val []byte) error {
		var ex Execution
		if err := json.Unmarshal(val, &ex); err != nil {
			return err
		}
		out = append(out, ex)
		return nil
	})
	return out, err
}

// Steps returns the per-round records of execution id in round order.
func (s *Store) Steps(id uint64) ([]Step, error) {
	var out []Step
	err := s.scan(stepPrefix(id), func(val []byte) error {
		var st Step
		if err := json.Unmarshal(val, &st); err != nil {
			return err
		}
		out = append(out, st)
		return nil
	})
	return out, err
}

func (s *Store) scan(prefix []byte, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// Backend writes finished runs to a Store. It implements telemetry.Backend.
type Backend struct {
	s    *Store
	info RunInfo
	seq  *badger.Sequence
}

var _ telemetry.Backend = (*Backend)(nil)

// Backend returns a telemetry backend recording runs under info. The graph
// named by info.GraphDigest must have been registered with PutGraph.
func (s *Store) Backend(info RunInfo) (*Backend, error) {
	if _, err := s.Graph(info.GraphDigest); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGraph, info.GraphDigest)
		}
		return nil, err
	}
	seq, err := s.db.GetSequence(runSeqKey, 64)
	if err != nil {
		return nil, fmt.Errorf("run sequence: %w", err)
	}
	return &Backend{s: s, info: info, seq: seq}, nil
}

// Dump stores m as a new execution followed by its step records.
func (b *Backend) Dump(m *telemetry.RunMetrics) error {
	id, err := b.seq.Next()
	if err != nil {
		return fmt.Errorf("next run id: %w", err)
	}

	ex := Execution{
		ID:          id,
		RunInfo:     b.info,
		Source:      m.Source,
		Reinserts:   m.Reinserts,
		Rounds:      len(m.StepSizes),
		Relaxations: m.TotalRelaxations(),
		RecordedAt:  time.Now().UTC(),
	}
	val, err := json.Marshal(ex)
	if err != nil {
		return err
	}

	wb := b.s.db.NewWriteBatch()
	defer wb.Cancel()
	if err := wb.Set(runKey(id), val); err != nil {
		return err
	}
	for step, size := range m.StepSizes {
		sv, err := json.Marshal(Step{Step: step, TotalVertices: size})
		if err != nil {
			return err
		}
		if err := wb.Set(stepKey(id, step), sv); err != nil {
			return err
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("write run %d: %w", id, err)
	}
	return nil
}

// Close returns unused run ids to the store.
func (b *Backend) Close() error {
	return b.seq.Release()
}
