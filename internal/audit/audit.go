// Package audit keeps a local JSONL history of scans so teams can see how a
// repository's secret exposure trends over time. The log lives under .git
// when available so it never ends up committed.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leakhound/leakhound/internal/report"
	"github.com/leakhound/leakhound/internal/types"
)

const maxTopIssues = 10

// ScanRecord is one line of the audit log.
type ScanRecord struct {
	Timestamp      time.Time      `json:"timestamp"`
	ScanID         string         `json:"scan_id"`
	Root           string         `json:"root"`
	TotalIssues    int            `json:"total_issues"`
	SeverityCounts map[string]int `json:"severity_counts"`
	FilesScanned   int            `json:"files_scanned"`
	StreamedFiles  int            `json:"streamed_files"`
	Binaries       int            `json:"binaries_skipped"`
	Duration       string         `json:"duration"`
	TopIssues      []IssueSummary `json:"top_issues,omitempty"`
}

// IssueSummary is a location-only digest of an issue. Snippets are masked
// before they reach the log.
type IssueSummary struct {
	File     string `json:"file"`
	Pattern  string `json:"pattern"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Snippet  string `json:"snippet,omitempty"`
}

// Log appends scan records under a repository root.
type Log struct {
	path string
}

// NewLog picks the log location for root: .git/leakhound_audit.jsonl inside a
// git repository, a dotfile at the root otherwise.
func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	path := filepath.Join(root, ".leakhound_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		path = filepath.Join(gitDir, "leakhound_audit.jsonl")
	}
	return &Log{path: path}
}

// Path returns the file the log writes to.
func (l *Log) Path() string { return l.path }

// History returns recorded scans, newest first. Malformed lines are skipped.
func (l *Log) History() ([]ScanRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec ScanRecord
		if err := dec.Decode(&rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Append writes one record to the log.
func (l *Log) Append(rec ScanRecord) error {
	if rec.ScanID == "" {
		rec.ScanID = fmt.Sprintf("scan_%d", time.Now().Unix())
	}

	// Owner-only: the log names files that contain secrets.
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// NewScanRecord builds a record from scan output. Issue snippets are masked
// so the log never stores a recoverable secret.
func NewScanRecord(root string, issues []types.Issue, filesScanned, streamed, binaries int, duration time.Duration) ScanRecord {
	counts := make(map[string]int)
	for _, is := range issues {
		counts[string(is.Severity)]++
	}

	top := make([]IssueSummary, 0, maxTopIssues)
	for i, is := range issues {
		if i >= maxTopIssues {
			break
		}
		top = append(top, IssueSummary{
			File:     is.File,
			Pattern:  is.Pattern,
			Severity: string(is.Severity),
			Line:     is.Line,
			Snippet:  report.MaskSnippet(is.Snippet),
		})
	}

	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           root,
		TotalIssues:    len(issues),
		SeverityCounts: counts,
		FilesScanned:   filesScanned,
		StreamedFiles:  streamed,
		Binaries:       binaries,
		Duration:       duration.String(),
		TopIssues:      top,
	}
}
