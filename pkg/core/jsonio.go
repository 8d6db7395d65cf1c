package core

import (
	"encoding/json"
	"io"
)

// MarshalIssues pretty-prints issues as JSON for humans or pipelines.
func MarshalIssues(w io.Writer, issues []Issue) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(issues)
}

// UnmarshalIssues decodes issues JSON, useful for ingestion tests.
func UnmarshalIssues(r io.Reader) ([]Issue, error) {
	var issues []Issue
	if err := json.NewDecoder(r).Decode(&issues); err != nil {
		return nil, err
	}
	return issues, nil
}
