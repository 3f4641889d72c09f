// ABOUTME: Import command for restoring records from an xlsx backup
// ABOUTME: Validates the workbook before replacing every collection

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/autoseguro/internal/backup"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Restore records from a spreadsheet backup",
	Long: `Restore all records from a workbook created with 'autoseguro backup'.

WARNING: This replaces ALL clients, vehicles, policies and claims.
Nothing is changed if the file is not a valid backup.

With --strict every column must be present and every row must pass the
same checks as the add commands (dates, CPF, money values, statuses).

Examples:
  autoseguro import autoseguro_backup_2024-06-10.xlsx
  autoseguro import backup.xlsx --strict --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		if !confirmed(cmd, fmt.Sprintf("Replace ALL records with the contents of '%s'?", filename)) {
			return nil
		}

		var opts []backup.DecodeOption
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			opts = append(opts, backup.WithStrictValidation())
		}

		if err := engine.ImportFile(commandContext(cmd), filename, opts...); err != nil {
			if backup.IsDecodeError(err) {
				return fmt.Errorf("invalid backup file, nothing was changed: %w", err)
			}
			return fmt.Errorf("failed to import: %w", err)
		}

		ds, err := store.Load()
		if err != nil {
			return err
		}

		color.Green("Import complete")
		fmt.Printf("  %d clients, %d vehicles, %d policies, %d claims\n",
			len(ds.Clients), len(ds.Vehicles), len(ds.Policies), len(ds.Claims))

		return nil
	},
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")
	importCmd.Flags().Bool("strict", false, "validate every column and field")

	rootCmd.AddCommand(importCmd)
}
