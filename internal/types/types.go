package types

import (
	"fmt"
	"regexp"
)

// Severity is a coarse-grained risk level for an issue.
type Severity string

const (
	SevCritical Severity = "critical"
	SevHigh     Severity = "high"
	SevMed      Severity = "medium"
	SevLow      Severity = "low"
	SevInfo     Severity = "info"
)

var severityRank = map[Severity]int{
	SevCritical: 4,
	SevHigh:     3,
	SevMed:      2,
	SevLow:      1,
	SevInfo:     0,
}

// Rank returns a numeric weight for comparing severities. Unknown values
// rank below info.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// Encoding is the closed set of text encodings the classifier reports.
type Encoding string

const (
	EncUTF8   Encoding = "utf-8"
	EncUTF16  Encoding = "utf-16"
	EncLatin1 Encoding = "latin-1"
	EncASCII  Encoding = "ascii"
)

// Pattern is one catalog rule: a line predicate plus reporting metadata.
// Patterns are immutable once built; the pool hands each worker its own
// copy via ClonePatterns.
type Pattern struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Expr        string   `json:"regex"`

	re *regexp.Regexp
}

// NewPattern compiles expr and returns the pattern or a compile error.
func NewPattern(id, name string, sev Severity, expr, description, suggestion string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %s: %w", id, err)
	}
	return Pattern{
		ID:          id,
		Name:        name,
		Severity:    sev,
		Description: description,
		Suggestion:  suggestion,
		Expr:        expr,
		re:          re,
	}, nil
}

// MustPattern is NewPattern for the built-in catalog, panicking on a bad expr.
func MustPattern(id, name string, sev Severity, expr, description, suggestion string) Pattern {
	p, err := NewPattern(id, name, sev, expr, description, suggestion)
	if err != nil {
		panic(err)
	}
	return p
}

// Match is one hit of a pattern on a single line.
type Match struct {
	PatternID string
	Offset    int // byte offset within the line
	Text      string
}

// FindAll applies the pattern predicate to one line and returns every hit.
func (p Pattern) FindAll(line string) []Match {
	if p.re == nil {
		return nil
	}
	idx := p.re.FindAllStringIndex(line, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([]Match, 0, len(idx))
	for _, loc := range idx {
		out = append(out, Match{PatternID: p.ID, Offset: loc[0], Text: line[loc[0]:loc[1]]})
	}
	return out
}

// Clone returns an independent copy with its own compiled expression.
func (p Pattern) Clone() Pattern {
	c := p
	if p.Expr != "" {
		c.re = regexp.MustCompile(p.Expr)
	}
	return c
}

// ClonePatterns deep-copies a catalog so nothing mutable is shared across a
// worker boundary.
func ClonePatterns(patterns []Pattern) []Pattern {
	out := make([]Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = p.Clone()
	}
	return out
}

// FileDescriptor is the classification result for one file. It is advisory:
// classification failures default rather than block a scan.
type FileDescriptor struct {
	Path         string   `json:"path"`
	Size         int64    `json:"size"`
	Binary       bool     `json:"binary"`
	Encoding     Encoding `json:"encoding"`
	ShouldStream bool     `json:"should_stream"`
}

// Issue describes one detected secret at a path and line. Issues are
// append-only; IDs are unique within one file's scan.
type Issue struct {
	ID         string   `json:"id"`
	Pattern    string   `json:"pattern"`
	Name       string   `json:"name,omitempty"`
	Severity   Severity `json:"severity"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Column     int      `json:"column,omitempty"` // byte offset within the line (0 if unknown)
	Snippet    string   `json:"snippet,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// IssueID builds the synthetic id used both for reporting and for the
// streaming overlap dedup.
func IssueID(patternID, file string, line int) string {
	return fmt.Sprintf("%s:%s:%d", patternID, file, line)
}

// TaskResult is the per-file outcome exchanged between a worker and the
// dispatcher. Exactly one is produced for every requested file.
type TaskResult struct {
	File   string  `json:"file"`
	Issues []Issue `json:"issues"`
	Err    string  `json:"error,omitempty"`
}
