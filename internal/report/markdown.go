package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/leakhound/leakhound/internal/types"
)

// PrintMarkdown renders a Markdown report with per-issue detail blocks.
// Snippets are fenced with a language guessed from the file extension so
// downstream viewers highlight them.
func PrintMarkdown(w io.Writer, issues []types.Issue, opts PrintOptions) {
	SortIssues(issues)
	fmt.Fprintln(w, "# leakhound report")
	fmt.Fprintln(w)
	if len(issues) == 0 {
		fmt.Fprintln(w, "No secrets found.")
		return
	}
	fmt.Fprintf(w, "%d issue(s) found across %d file(s).\n\n", len(issues), opts.FilesScanned)
	fmt.Fprintln(w, "| Severity | Pattern | Location |")
	fmt.Fprintln(w, "|----------|---------|----------|")
	for _, is := range issues {
		fmt.Fprintf(w, "| %s | %s | %s:%d |\n", is.Severity, is.Pattern, is.File, is.Line)
	}
	fmt.Fprintln(w)
	for _, is := range issues {
		fmt.Fprintf(w, "## %s (%s:%d)\n\n", is.Name, is.File, is.Line)
		fmt.Fprintf(w, "```%s\n%s\n```\n\n", languageHint(is.File), MaskSnippet(is.Snippet))
		if is.Suggestion != "" {
			fmt.Fprintf(w, "> %s\n\n", is.Suggestion)
		}
	}
}

// languageHint maps a filename to a chroma lexer name, defaulting to plain
// text.
func languageHint(path string) string {
	if lx := lexers.Match(filepath.Base(path)); lx != nil {
		return strings.ToLower(lx.Config().Name)
	}
	return "text"
}
