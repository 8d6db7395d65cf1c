package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/leakhound/leakhound/internal/types"
)

// PrintTable renders the bordered table output.
func PrintTable(w io.Writer, issues []types.Issue, opts PrintOptions) {
	SortIssues(issues)
	if len(issues) == 0 {
		fmt.Fprintln(w, "No secrets found ✅")
		printSummary(w, issues, opts)
		return
	}

	table := tablewriter.NewWriter(w)
	table.Header("Severity", "Pattern", "Location", "Snippet")
	for _, is := range issues {
		sev := string(is.Severity)
		if !opts.NoColor {
			sev = colorSeverity(is.Severity)
		}
		_ = table.Append(sev, is.Pattern, fmt.Sprintf("%s:%d", is.File, is.Line), MaskSnippet(is.Snippet))
	}
	_ = table.Render()
	printSummary(w, issues, opts)
}
