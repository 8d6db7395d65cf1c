package leakhound

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leakhound/leakhound/internal/catalog"
)

func init() {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List available patterns",
		Run: func(_ *cobra.Command, _ []string) {
			for _, p := range catalog.Builtin() {
				fmt.Printf("%-22s %-8s %s\n", p.ID, p.Severity, p.Name)
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
