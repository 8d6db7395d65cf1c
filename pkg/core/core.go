package core

import (
	"context"

	"github.com/leakhound/leakhound/internal/engine"
	"github.com/leakhound/leakhound/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Issue = types.Issue
type Result = engine.Result

// Scan is the stable entrypoint for other programs.
func Scan(cfg Config) ([]Issue, error) {
	return engine.Scan(cfg)
}

// ScanWithStats runs a scan and returns issues together with execution
// statistics. The context cancels in-flight workers.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanWithStats(ctx, cfg)
}

// PatternIDs returns the list of built-in pattern IDs.
// This is exposed for convenience to avoid importing internals directly.
func PatternIDs() []string { return engine.PatternIDs() }
