package leakhound

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leakhound/leakhound/internal/audit"
	"github.com/leakhound/leakhound/internal/catalog"
	"github.com/leakhound/leakhound/internal/config"
	"github.com/leakhound/leakhound/internal/engine"
	"github.com/leakhound/leakhound/internal/report"
	"github.com/leakhound/leakhound/internal/types"
	"github.com/leakhound/leakhound/internal/update"
)

var (
	flagPath        string
	flagInclude     string
	flagExclude     string
	flagMaxBytes    int64
	flagEnable      string
	flagDisable     string
	flagTable       bool
	flagText        bool
	flagMarkdown    bool
	flagMinSeverity string
	flagFanOut      int
	flagChunkKiB    int
	flagOverlapKiB  int
	flagNoAudit     bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Scan files for secrets",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these patterns (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these patterns (comma-separated IDs)")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders (default)")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "output a Markdown report")
	cmd.Flags().StringVar(&flagMinSeverity, "min-severity", "", "drop issues below this severity")
	cmd.Flags().IntVar(&flagFanOut, "fanout-threshold", 0, "batch size at which scanning fans out to workers")
	cmd.Flags().IntVar(&flagChunkKiB, "chunk-size", 0, "streaming chunk size in KiB")
	cmd.Flags().IntVar(&flagOverlapKiB, "overlap", 0, "streaming chunk overlap in KiB")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not append this scan to the audit log")
}

func runScan(_ *cobra.Command, args []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}
	custom, err := catalog.Compile(append(gcfg.Patterns, lcfg.Patterns...))
	if err != nil {
		return fmt.Errorf("custom patterns: %w", err)
	}

	cfg := engine.Config{
		Root:            abs,
		Files:           args,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		EnablePatterns:  pickString(flagEnable, lcfg.Enable, gcfg.Enable),
		DisablePatterns: pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		CustomPatterns:  custom,
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		DefaultExcludes: flagDefaultExcludes,
		FanOutThreshold: pickInt(flagFanOut, lcfg.FanOutThreshold, gcfg.FanOutThreshold),
		ChunkSize:       pickInt(flagChunkKiB, lcfg.ChunkSizeKiB, gcfg.ChunkSizeKiB) << 10,
		Overlap:         pickInt(flagOverlapKiB, lcfg.OverlapKiB, gcfg.OverlapKiB) << 10,
	}
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	machine := flagJSON || flagSARIF

	if !machine {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'leakhound upgrade'\n", latest)
			}
		}
		fmt.Fprintf(os.Stderr, "Scanning %s with %d patterns...\n", abs, len(engine.PatternIDs()))
	}

	if !machine {
		if term.IsTerminal(int(os.Stderr.Fd())) {
			bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
			cfg.Progress = func(completed, total int) {
				if total == 0 {
					return
				}
				fmt.Fprintf(os.Stderr, "\r%s %d/%d", bar.ViewAs(float64(completed)/float64(total)), completed, total)
				if completed == total {
					fmt.Fprintln(os.Stderr)
				}
			}
		} else {
			cfg.Progress = func(completed, total int) {
				if total == 0 || (completed%25 != 0 && completed != total) {
					return
				}
				fmt.Fprintf(os.Stderr, "[%d/%d]\n", completed, total)
			}
		}
	}

	res, err := engine.ScanWithStats(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if res.BatchErr != nil && !machine {
		fmt.Fprintln(os.Stderr, "warning:", res.BatchErr)
	}

	issues := res.Issues
	if min := pickString(flagMinSeverity, lcfg.MinSeverity, gcfg.MinSeverity); min != "" {
		issues = filterSeverity(issues, types.Severity(min))
	}
	if issues == nil {
		issues = []types.Issue{} // no `null` in JSON
	}

	opts := report.PrintOptions{
		NoColor:      noColor,
		Duration:     res.Duration,
		FilesScanned: res.FilesScanned,
		Streamed:     res.StreamedFiles,
		Binaries:     res.BinariesSkipped,
	}
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, issues, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		if err := report.WriteJSON(os.Stdout, issues, opts); err != nil {
			return err
		}
	case flagMarkdown:
		report.PrintMarkdown(os.Stdout, issues, opts)
	case flagText:
		report.PrintText(os.Stdout, issues, opts)
	default:
		report.PrintTable(os.Stdout, issues, opts)
	}

	if !flagNoAudit {
		rec := audit.NewScanRecord(abs, issues, res.FilesScanned, res.StreamedFiles, res.BinariesSkipped, res.Duration)
		if err := audit.NewLog(abs).Append(rec); err != nil && !machine {
			fmt.Fprintln(os.Stderr, "audit warning:", err)
		}
	}

	if shouldFail(issues, flagFailOn) {
		os.Exit(1)
	}
	return nil
}

func filterSeverity(issues []types.Issue, min types.Severity) []types.Issue {
	rank := min.Rank()
	if rank < 0 {
		return issues
	}
	out := issues[:0]
	for _, is := range issues {
		if is.Severity.Rank() >= rank {
			out = append(out, is)
		}
	}
	return out
}
