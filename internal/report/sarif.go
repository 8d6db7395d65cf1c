package report

import (
	"encoding/json"
	"io"

	"github.com/leakhound/leakhound/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevCritical, types.SevHigh:
		return "error"
	case types.SevMed:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes issues as SARIF 2.1.0 to the provided writer. Each unique
// pattern becomes a rule under tool.driver.rules and results link back via
// ruleIndex. Snippets are masked before serialization.
func WriteSARIF(w io.Writer, issues []types.Issue, version string) error {
	SortIssues(issues)
	driver := sarifDriver{Name: "leakhound", Version: version, Rules: []sarifRule{}}
	ruleIdx := map[string]int{}
	run := sarifRun{Results: []sarifResult{}}
	for _, is := range issues {
		idx, ok := ruleIdx[is.Pattern]
		if !ok {
			idx = len(driver.Rules)
			ruleIdx[is.Pattern] = idx
			driver.Rules = append(driver.Rules, sarifRule{
				ID:               is.Pattern,
				ShortDescription: sarifMessage{Text: is.Name},
			})
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:    is.Pattern,
			RuleIndex: idx,
			Level:     sevToLevel(is.Severity),
			Message:   sarifMessage{Text: is.Name + ": " + MaskSnippet(is.Snippet)},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: is.File},
					Region:           sarifRegion{StartLine: is.Line, StartColumn: is.Column + 1},
				},
			}},
		})
	}
	run.Tool = sarifTool{Driver: driver}
	doc := sarif{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
