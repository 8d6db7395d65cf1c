package leakhound

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the leakhound version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("leakhound v" + version)
		},
	})
}
