// Package matcher holds the stateless line-matching primitive shared by the
// whole-file and streaming scan paths.
package matcher

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/leakhound/leakhound/internal/types"
)

// maxLineBytes caps the scanner's line buffer. Whole-file scanning only sees
// files below the streaming cutoff, but callers may hand in larger content.
const maxLineBytes = 32 << 20

// maxSnippetLen trims pathological lines before they land in a report.
const maxSnippetLen = 200

// ignoreMarker suppresses every pattern on the line carrying it.
const ignoreMarker = "leakhound:ignore"

// MatchLine applies every pattern to a single line and returns all hits with
// their byte offsets. It carries no state between calls.
func MatchLine(line string, patterns []types.Pattern) []types.Match {
	var out []types.Match
	for _, p := range patterns {
		out = append(out, p.FindAll(line)...)
	}
	return out
}

// IssuesForLine builds the issues for one logical line. At most one issue is
// emitted per pattern per line (the first hit carries the column), keeping
// issue IDs unique within a file's scan.
func IssuesForLine(path string, lineNo int, line string, patterns []types.Pattern) []types.Issue {
	if strings.Contains(line, ignoreMarker) {
		return nil
	}
	var out []types.Issue
	for _, p := range patterns {
		hits := p.FindAll(line)
		if len(hits) == 0 {
			continue
		}
		out = append(out, types.Issue{
			ID:         types.IssueID(p.ID, path, lineNo),
			Pattern:    p.ID,
			Name:       p.Name,
			Severity:   p.Severity,
			File:       path,
			Line:       lineNo,
			Column:     hits[0].Offset,
			Snippet:    snippet(line),
			Suggestion: p.Suggestion,
		})
	}
	return out
}

// ScanContent runs the whole-file line loop over in-memory content. Lines
// are 1-based and issues come back line-ordered. A line beyond maxLineBytes
// stops the scan; issues found up to that point are returned with the error.
func ScanContent(path string, data []byte, patterns []types.Pattern) ([]types.Issue, error) {
	var out []types.Issue
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		out = append(out, IssuesForLine(path, line, sc.Text(), patterns)...)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("scan %s: %w", path, err)
	}
	return out, nil
}

func snippet(line string) string {
	s := strings.TrimSpace(line)
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen]
	}
	return s
}
