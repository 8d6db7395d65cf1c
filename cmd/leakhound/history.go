package leakhound

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leakhound/leakhound/internal/audit"
)

var flagHistoryLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scans from the audit log",
		RunE:  runHistory,
	}
	cmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "show at most this many scans")
	rootCmd.AddCommand(cmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	root, _ := filepath.Abs(flagPath)
	if root == "" {
		root, _ = filepath.Abs(".")
	}
	records, err := audit.NewLog(root).History()
	if err != nil {
		return fmt.Errorf("no scan history for %s: %w", root, err)
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	for _, rec := range records {
		fmt.Printf("%s  issues=%d files=%d streamed=%d took=%s\n",
			rec.Timestamp.Format("2006-01-02 15:04:05"), rec.TotalIssues, rec.FilesScanned, rec.StreamedFiles, rec.Duration)
	}
	return nil
}
