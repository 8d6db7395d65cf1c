package report

import (
	"encoding/json"
	"io"

	"github.com/leakhound/leakhound/internal/types"
)

// jsonReport is the envelope for machine-readable output.
type jsonReport struct {
	Issues       []types.Issue `json:"issues"`
	FilesScanned int           `json:"files_scanned"`
	Binaries     int           `json:"binaries_skipped"`
	Streamed     int           `json:"streamed_files"`
	DurationMS   int64         `json:"duration_ms"`
}

// WriteJSON writes issues plus scan statistics as indented JSON. Issues is
// never null in the output, even when empty.
func WriteJSON(w io.Writer, issues []types.Issue, opts PrintOptions) error {
	SortIssues(issues)
	if issues == nil {
		issues = []types.Issue{}
	}
	rep := jsonReport{
		Issues:       issues,
		FilesScanned: opts.FilesScanned,
		Binaries:     opts.Binaries,
		Streamed:     opts.Streamed,
		DurationMS:   opts.Duration.Milliseconds(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
