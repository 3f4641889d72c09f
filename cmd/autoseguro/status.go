// ABOUTME: Status command showing the dashboard
// ABOUTME: Prints record counters and warns when the last backup is missing or old

package main

import (
	"fmt"

	"github.com/harper/autoseguro/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"dashboard"},
	Short:   "Show record counters and backup age",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
		st, err := engine.Status()
		if err != nil {
			return fmt.Errorf("failed to read backup status: %w", err)
		}

		fmt.Println(ui.FormatStats(ds.Stats()))
		fmt.Println(ui.FormatBackupStatus(st, staleAfterDays()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
