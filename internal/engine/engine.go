package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/leakhound/leakhound/internal/cache"
	"github.com/leakhound/leakhound/internal/catalog"
	"github.com/leakhound/leakhound/internal/classify"
	"github.com/leakhound/leakhound/internal/ignore"
	"github.com/leakhound/leakhound/internal/matcher"
	"github.com/leakhound/leakhound/internal/pool"
	"github.com/leakhound/leakhound/internal/stream"
	"github.com/leakhound/leakhound/internal/types"
)

// DefaultFanOutThreshold is the batch size above which worker fan-out pays
// for its dispatch overhead.
const DefaultFanOutThreshold = 10

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root            string
	Files           []string // pre-collected paths; when empty the walker collects from Root
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	EnablePatterns  string
	DisablePatterns string
	CustomPatterns  []types.Pattern
	NoCache         bool
	DefaultExcludes bool
	FanOutThreshold int // 0 means DefaultFanOutThreshold
	ChunkSize       int // 0 means stream.DefaultChunkSize
	Overlap         int // 0 means stream.DefaultOverlap
	Progress        func(completed, total int)
}

// Result contains merged issues plus scan statistics.
type Result struct {
	Issues          []types.Issue
	Files           []types.TaskResult
	FilesScanned    int
	BinariesSkipped int
	CacheSkipped    int
	StreamedFiles   int
	Duration        time.Duration
	BatchErr        error // non-fatal worker-crash flag; partial results kept
}

// Scan runs a scan and returns only the merged issues.
func Scan(cfg Config) ([]types.Issue, error) {
	res, err := ScanWithStats(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return res.Issues, nil
}

// PatternIDs returns the IDs of the built-in catalog.
func PatternIDs() []string {
	return catalog.IDs()
}

// ScanWithStats classifies every collected file, streams the large ones
// synchronously, fans the rest out to a worker pool above the fan-out
// threshold (scanning inline below it), and merges all issues.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	var result Result
	started := time.Now()

	patterns := catalog.Filter(catalog.Builtin(), cfg.EnablePatterns, cfg.DisablePatterns)
	patterns = append(patterns, cfg.CustomPatterns...)

	files := cfg.Files
	if len(files) == 0 {
		ign, _ := ignore.Load(ignorePath(cfg.Root))
		collected, err := CollectFiles(ctx, cfg, ign)
		if err != nil {
			return result, fmt.Errorf("collect files: %w", err)
		}
		files = collected
	}

	var db cache.DB
	updated := map[string]string{}
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root)
	} else {
		db.Entries = map[string]string{}
	}

	// Classification pass: binaries are terminal, streamed files bypass
	// the pool because the worker protocol only carries whole-file
	// results.
	var streamed []types.FileDescriptor
	var whole []string
	for _, f := range files {
		if !cfg.NoCache {
			if fp := cache.Fingerprint(f); fp != "" && db.Entries[f] == fp {
				result.CacheSkipped++
				continue
			}
		}
		fd := classify.Classify(f)
		if fd.Binary {
			result.BinariesSkipped++
			continue
		}
		if fd.ShouldStream {
			streamed = append(streamed, fd)
			continue
		}
		whole = append(whole, f)
	}

	total := len(streamed) + len(whole)
	completed := 0
	tick := func() {
		completed++
		if cfg.Progress != nil {
			cfg.Progress(completed, total)
		}
	}

	// Large files stream synchronously in the orchestrator.
	sc := &stream.Scanner{ChunkSize: orDefault(cfg.ChunkSize, stream.DefaultChunkSize), Overlap: orDefault(cfg.Overlap, stream.DefaultOverlap)}
	for _, fd := range streamed {
		issues, err := sc.ScanStream(fd.Path, fd.Encoding, patterns)
		tr := types.TaskResult{File: fd.Path, Issues: issues}
		if err != nil {
			tr.Err = err.Error()
			tr.Issues = nil
		} else {
			markClean(cfg, updated, fd.Path)
		}
		result.Files = append(result.Files, tr)
		result.StreamedFiles++
		tick()
	}

	// Remaining files: fan out above the threshold, scan inline below it.
	threshold := orDefault(cfg.FanOutThreshold, DefaultFanOutThreshold)
	if len(whole) > threshold {
		p := pool.New(pool.Options{Workers: cfg.Threads})
		done := make(chan struct{})
		if cfg.Progress != nil {
			go reportPoolProgress(p, done, completed, total, len(whole), cfg.Progress)
		}
		results, err := p.ScanFiles(ctx, whole, patterns)
		close(done)
		if err != nil && !isCrash(err) {
			return result, err
		}
		result.BatchErr = err
		for _, tr := range results {
			if tr.Err == "" {
				markClean(cfg, updated, tr.File)
			}
			result.Files = append(result.Files, tr)
		}
		completed += len(results)
		if cfg.Progress != nil {
			cfg.Progress(completed, total)
		}
	} else {
		for _, f := range whole {
			result.Files = append(result.Files, scanInline(f, patterns, cfg, updated))
			tick()
		}
	}

	for _, tr := range result.Files {
		result.Issues = append(result.Issues, tr.Issues...)
	}
	result.FilesScanned = len(result.Files)
	result.Duration = time.Since(started)

	if !cfg.NoCache && len(updated) > 0 {
		if db.Entries == nil {
			db.Entries = map[string]string{}
		}
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}
	return result, nil
}

func scanInline(path string, patterns []types.Pattern, cfg Config, updated map[string]string) types.TaskResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.TaskResult{File: path, Err: err.Error()}
	}
	issues, err := matcher.ScanContent(path, data, patterns)
	tr := types.TaskResult{File: path, Issues: issues}
	if err != nil {
		tr.Err = err.Error()
		return tr
	}
	markClean(cfg, updated, path)
	return tr
}

func markClean(cfg Config, updated map[string]string, path string) {
	if cfg.NoCache {
		return
	}
	if fp := cache.Fingerprint(path); fp != "" {
		updated[path] = fp
	}
}

// reportPoolProgress bridges the pool's internal counters to the caller's
// Progress callback while a batch runs. base is taken by value: the caller
// mutates its counter after closing done, and a late tick must not observe
// that write.
func reportPoolProgress(p *pool.Pool, done <-chan struct{}, base, total, batch int, progress func(int, int)) {
	tk := time.NewTicker(50 * time.Millisecond)
	defer tk.Stop()
	for {
		select {
		case <-done:
			return
		case <-tk.C:
			progress(base+int(p.Progress()*float64(batch)), total)
		}
	}
}

func isCrash(err error) bool {
	return errors.Is(err, pool.ErrWorkerCrashed)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
