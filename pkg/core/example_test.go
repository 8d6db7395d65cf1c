package core_test

import (
	"fmt"
	"os"

	"github.com/leakhound/leakhound/pkg/core"
)

// ExampleScan demonstrates how to perform a simple scan of a directory.
func ExampleScan() {
	// 1. Configure the scan
	cfg := core.Config{
		Root:         ".",
		Threads:      4,
		IncludeGlobs: "*.go",
		MaxBytes:     1024 * 1024,
	}

	// 2. Run the scan
	issues, err := core.Scan(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		return
	}

	// 3. Process issues
	if len(issues) == 0 {
		fmt.Println("No secrets found.")
	} else {
		fmt.Printf("Found %d secrets.\n", len(issues))
		_ = core.MarshalIssues(os.Stdout, issues)
	}
}
