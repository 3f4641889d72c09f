// ABOUTME: Restore command for YAML snapshots written by 'export --format yaml'
// ABOUTME: Replaces every collection after checking the snapshot version

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var restoreYAMLCmd = &cobra.Command{
	Use:   "restore-yaml <file>",
	Short: "Restore records from a YAML snapshot",
	Long: `Restore all records from a YAML snapshot created with
'autoseguro export --format yaml'.

WARNING: This replaces ALL clients, vehicles, policies and claims.

Examples:
  autoseguro restore-yaml snapshot.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		f, err := os.Open(filename) //nolint:gosec // path is chosen by the operator
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if !confirmed(cmd, fmt.Sprintf("Replace ALL records with the contents of '%s'?", filename)) {
			return nil
		}

		if err := engine.ImportYAML(commandContext(cmd), f); err != nil {
			return fmt.Errorf("failed to restore: %w", err)
		}

		ds, err := store.Load()
		if err != nil {
			return err
		}

		color.Green("Restore complete")
		fmt.Printf("  %d clients, %d vehicles, %d policies, %d claims\n",
			len(ds.Clients), len(ds.Vehicles), len(ds.Policies), len(ds.Claims))
		return nil
	},
}

func init() {
	restoreYAMLCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(restoreYAMLCmd)
}
