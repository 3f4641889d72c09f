// ABOUTME: Reset command restoring the sample dataset
// ABOUTME: Discards every record after confirmation; the backup timestamp is kept

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all records and restore the sample data",
	Long: `Discard all clients, vehicles, policies and claims and restore the
sample records a new installation starts with.

Take a backup first if you may need the current records.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmed(cmd, "Discard ALL records and restore the sample data?") {
			return nil
		}

		if err := store.Reset(); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}

		color.Green("✓ Records reset to sample data")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(resetCmd)
}
