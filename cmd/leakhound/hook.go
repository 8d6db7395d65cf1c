package leakhound

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leakhound/leakhound/internal/githook"
)

var flagHookForce bool

func init() {
	hookCmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage the git pre-commit hook",
	}
	rootCmd.AddCommand(hookCmd)

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install the pre-commit hook in the current repository",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, _ := filepath.Abs(".")
			path, err := githook.Install(root, flagHookForce)
			if err != nil {
				return err
			}
			// keep the audit log and cache out of commits
			for _, pat := range []string{".leakhound_audit.jsonl", ".leakhoundcache.json"} {
				if err := githook.AppendIgnore(root, pat); err != nil {
					fmt.Fprintln(os.Stderr, "gitignore warning:", err)
				}
			}
			fmt.Println("installed:", path)
			return nil
		},
	}
	installCmd.Flags().BoolVar(&flagHookForce, "force", false, "replace an existing pre-commit hook")
	hookCmd.AddCommand(installCmd)

	hookCmd.AddCommand(&cobra.Command{
		Use:   "uninstall",
		Short: "Remove the pre-commit hook",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, _ := filepath.Abs(".")
			if err := githook.Uninstall(root); err != nil {
				return err
			}
			fmt.Println("uninstalled")
			return nil
		},
	})

	hookCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether the pre-commit hook is installed",
		Run: func(_ *cobra.Command, _ []string) {
			root, _ := filepath.Abs(".")
			if githook.Installed(root) {
				fmt.Println("installed")
			} else {
				fmt.Println("not installed")
			}
		},
	})
}
