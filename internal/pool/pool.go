// Package pool fans a file list out across worker goroutines, each running a
// sequential whole-file scan over its own contiguous slice, and aggregates
// exactly one result per requested file. The pool is an explicitly
// constructed value owned by its caller; there is no ambient singleton.
package pool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/leakhound/leakhound/internal/matcher"
	"github.com/leakhound/leakhound/internal/types"
)

var (
	// ErrTerminated reports that Terminate interrupted a running batch.
	ErrTerminated = errors.New("scan terminated")
	// ErrWorkerCrashed flags a batch in which at least one worker
	// panicked. Accumulated results are still returned alongside it.
	ErrWorkerCrashed = errors.New("worker crashed")
)

// Options configures a Pool.
type Options struct {
	// Workers is the number of worker goroutines. Zero or negative means
	// max(1, NumCPU-1).
	Workers int
}

// Pool dispatches scan work and tracks batch progress. Construct with New;
// one batch runs at a time.
type Pool struct {
	workers int

	total     atomic.Int64
	completed atomic.Int64
	active    atomic.Int64
	errCount  atomic.Int64
	resCount  atomic.Int64

	term     chan struct{}
	termOnce sync.Once
}

// Stats is a point-in-time snapshot of one batch.
type Stats struct {
	TotalFiles     int `json:"total_files"`
	CompletedFiles int `json:"completed_files"`
	ActiveWorkers  int `json:"active_workers"`
	WorkerCount    int `json:"worker_count"`
	Errors         int `json:"errors"`
	Results        int `json:"results"`
}

// New builds a Pool.
func New(opts Options) *Pool {
	w := opts.Workers
	if w <= 0 {
		w = runtime.NumCPU() - 1
		if w < 1 {
			w = 1
		}
	}
	return &Pool{workers: w, term: make(chan struct{})}
}

// message is the tagged union a worker posts to the dispatcher. Exactly one
// resultMsg arrives per file, then one completeMsg per worker; errorMsg
// reports a worker crash.
type message interface{ workerMessage() }

type resultMsg struct{ res types.TaskResult }

type errorMsg struct {
	worker int
	err    error
}

type completeMsg struct{ worker int }

func (resultMsg) workerMessage()   {}
func (errorMsg) workerMessage()    {}
func (completeMsg) workerMessage() {}

// ScanFiles partitions files into contiguous order-preserving slices, scans
// them on worker goroutines, and returns one TaskResult per input file,
// sorted lexicographically by path. Each worker receives its own copy of its
// slice and of the pattern catalog; no mutable state is shared.
//
// A per-file failure becomes that file's TaskResult error and never stops
// the worker. A worker panic is recovered and surfaced as ErrWorkerCrashed
// on the batch while every accumulated result, including error-filled
// results for the crashed worker's unreached files, is still returned.
func (p *Pool) ScanFiles(ctx context.Context, files []string, patterns []types.Pattern) ([]types.TaskResult, error) {
	p.total.Store(int64(len(files)))
	p.completed.Store(0)
	p.errCount.Store(0)
	p.resCount.Store(0)

	if len(files) == 0 {
		return nil, nil
	}

	parts := partition(files, p.workers)
	// buffered so workers never block after the dispatcher stops reading
	msgs := make(chan message, len(files)+2*len(parts))

	for i, part := range parts {
		slice := append([]string(nil), part...)
		p.active.Add(1)
		go p.runWorker(ctx, i, slice, patterns, msgs)
	}

	var (
		results  []types.TaskResult
		batchErr error
		pending  = len(parts)
	)
	for pending > 0 {
		select {
		case <-p.term:
			return sortResults(results), ErrTerminated
		case <-ctx.Done():
			return sortResults(results), ctx.Err()
		case m := <-msgs:
			switch msg := m.(type) {
			case resultMsg:
				results = append(results, msg.res)
				p.completed.Add(1)
				p.resCount.Add(1)
				if msg.res.Err != "" {
					p.errCount.Add(1)
				}
			case errorMsg:
				batchErr = fmt.Errorf("%w: %v", ErrWorkerCrashed, msg.err)
			case completeMsg:
				pending--
			default:
				batchErr = fmt.Errorf("unknown worker message %T", m)
			}
		}
	}
	return sortResults(results), batchErr
}

// runWorker scans its slice file by file. I/O errors degrade to per-file
// error results; a panic converts the remaining slice to error results so
// the dispatcher still sees one result per file.
func (p *Pool) runWorker(ctx context.Context, id int, files []string, patterns []types.Pattern, out chan<- message) {
	i := 0
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("worker %d panicked: %v", id, r)
			out <- errorMsg{worker: id, err: err}
			for ; i < len(files); i++ {
				out <- resultMsg{res: types.TaskResult{File: files[i], Err: err.Error()}}
			}
		}
		out <- completeMsg{worker: id}
		p.active.Add(-1)
	}()

	// deep copy: the worker owns its catalog, nothing mutable crosses the
	// goroutine boundary
	patterns = types.ClonePatterns(patterns)

	for ; i < len(files); i++ {
		select {
		case <-p.term:
			return
		case <-ctx.Done():
			return
		default:
		}

		file := files[i]
		data, err := os.ReadFile(file)
		if err != nil {
			out <- resultMsg{res: types.TaskResult{File: file, Err: err.Error()}}
			continue
		}
		issues, err := matcher.ScanContent(file, data, patterns)
		res := types.TaskResult{File: file, Issues: issues}
		if err != nil {
			res.Err = err.Error()
		}
		out <- resultMsg{res: res}
	}
}

// Progress reports completedFiles/totalFiles in [0,1]. It is monotonically
// non-decreasing within a batch and reaches exactly 1 only once every
// dispatched file has a result.
func (p *Pool) Progress() float64 {
	total := p.total.Load()
	if total == 0 {
		return 0
	}
	return float64(p.completed.Load()) / float64(total)
}

// GetStats snapshots the batch counters.
func (p *Pool) GetStats() Stats {
	return Stats{
		TotalFiles:     int(p.total.Load()),
		CompletedFiles: int(p.completed.Load()),
		ActiveWorkers:  int(p.active.Load()),
		WorkerCount:    p.workers,
		Errors:         int(p.errCount.Load()),
		Results:        int(p.resCount.Load()),
	}
}

// Terminate force-stops all live workers. It is idempotent and safe to call
// before a batch starts or after one completes.
func (p *Pool) Terminate() {
	p.termOnce.Do(func() { close(p.term) })
}

// partition splits files into at most n contiguous, order-preserving slices
// using ceil division, dropping empty tails.
func partition(files []string, n int) [][]string {
	if n < 1 {
		n = 1
	}
	size := (len(files) + n - 1) / n
	if size == 0 {
		return nil
	}
	var parts [][]string
	for start := 0; start < len(files); start += size {
		end := start + size
		if end > len(files) {
			end = len(files)
		}
		parts = append(parts, files[start:end])
	}
	return parts
}

func sortResults(results []types.TaskResult) []types.TaskResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})
	return results
}
