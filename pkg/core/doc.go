// Package core provides a small, stable facade over leakhound's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so other tools can depend on a stable import path without exposing
// internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: ".", Threads: 0}
//	issues, err := core.Scan(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalIssues(os.Stdout, issues)
package core
