package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/leakhound/leakhound/internal/types"
)

// PrintOptions controls the human-readable renderers.
type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	Streamed     int
	Binaries     int
}

var severityStyles = map[types.Severity]lipgloss.Style{
	types.SevCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	types.SevHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	types.SevMed:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	types.SevLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	types.SevInfo:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// SortIssues orders issues by path then line then pattern, the canonical
// report order.
func SortIssues(issues []types.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Pattern < issues[j].Pattern
	})
}

// PrintText writes the plain columnar report.
func PrintText(w io.Writer, issues []types.Issue, opts PrintOptions) {
	SortIssues(issues)
	if len(issues) == 0 {
		fmt.Fprintln(w, "No secrets found ✅")
	} else {
		maxPat := 8
		for _, is := range issues {
			if l := len(is.Pattern); l > maxPat {
				maxPat = l
			}
		}
		fmt.Fprintf(w, "Issues: %d\n", len(issues))
		for _, is := range issues {
			sev := string(is.Severity)
			if !opts.NoColor {
				sev = colorSeverity(is.Severity)
			}
			fmt.Fprintf(w, "%-8s %-*s %s:%d  %s\n", sev, maxPat, is.Pattern, is.File, is.Line, MaskSnippet(is.Snippet))
		}
	}
	printSummary(w, issues, opts)
}

func printSummary(w io.Writer, issues []types.Issue, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned == 0 {
		return
	}
	counts := map[types.Severity]int{}
	for _, is := range issues {
		counts[is.Severity]++
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Issues: %d (critical: %d, high: %d, medium: %d, low: %d)\n",
		len(issues), counts[types.SevCritical], counts[types.SevHigh], counts[types.SevMed], counts[types.SevLow])
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d", opts.FilesScanned)
		if opts.Streamed > 0 {
			fmt.Fprintf(w, " (%d streamed)", opts.Streamed)
		}
		fmt.Fprintln(w)
	}
	if opts.Binaries > 0 {
		fmt.Fprintf(w, "Binaries skipped: %d\n", opts.Binaries)
	}
}

// MaskSnippet hides the middle of a matched snippet so reports do not leak
// the very secrets they flag.
func MaskSnippet(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func colorSeverity(s types.Severity) string {
	if st, ok := severityStyles[s]; ok {
		return st.Render(string(s))
	}
	return string(s)
}
