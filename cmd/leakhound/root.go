package leakhound

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON            bool
	flagSARIF           bool
	flagThreads         int
	flagFailOn          string
	flagNoColor         bool
	flagNoCache         bool
	flagDefaultExcludes bool
	flagNoUpdateCheck   bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the leakhound CLI.
var rootCmd = &cobra.Command{
	Use:           "leakhound",
	Short:         "Find secrets before they leak",
	Long:          "Leakhound scans your working tree for API keys, tokens and credentials, streaming large files and fanning batches out across workers.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the leakhound CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = CPUs-1)")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "medium", "exit nonzero on issues at or above info|low|medium|high|critical")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
