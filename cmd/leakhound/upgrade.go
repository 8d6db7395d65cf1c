package leakhound

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leakhound/leakhound/internal/update"
)

func init() {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade leakhound to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			latest, newer, err := update.Check(version, false)
			if err == nil && !newer && latest != "" {
				fmt.Printf("already up to date (v%s)\n", version)
				return nil
			}
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("upgrade failed: %w", err)
			}
			fmt.Println("upgraded to the latest release")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
