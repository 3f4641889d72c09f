// ABOUTME: Backup command for exporting all records to an xlsx workbook
// ABOUTME: Records the backup instant used by the staleness warning

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a spreadsheet backup of all records",
	Long: `Create an xlsx workbook with one sheet per collection: clients,
vehicles, policies and claims.

The backup file can be used to:
- Restore after data loss with 'autoseguro import'
- Move records to another machine
- Review records in a spreadsheet program

Examples:
  autoseguro backup
  autoseguro backup --dir ~/backups
  autoseguro backup -o office.xlsx`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		dir, _ := cmd.Flags().GetString("dir")

		art, err := engine.Export()
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		if output == "" {
			output = filepath.Join(dir, art.Name)
		}

		if err := os.WriteFile(output, art.Data, 0644); err != nil { //nolint:gosec // 0644 is intentional for backup files
			return fmt.Errorf("failed to write backup: %w", err)
		}

		color.Green("Backup created: %s", output)
		fmt.Printf("  %d clients, %d vehicles, %d policies, %d claims\n",
			art.Clients, art.Vehicles, art.Policies, art.Claims)

		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "output file (default: autoseguro_backup_YYYY-MM-DD.xlsx)")
	backupCmd.Flags().String("dir", ".", "directory for the default file name")

	rootCmd.AddCommand(backupCmd)
}
