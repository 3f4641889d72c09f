// ABOUTME: Export command for generating markdown reports and YAML snapshots
// ABOUTME: Text exports do not count as backups for the staleness warning

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harper/autoseguro/internal/backup"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"e"},
	Short:   "Export records as markdown or YAML",
	Long: `Export all records as a markdown report or a YAML snapshot.

The YAML snapshot can be restored with 'autoseguro restore-yaml'. Use
'autoseguro backup' for the spreadsheet backup tracked by 'status'.

Examples:
  autoseguro export --format markdown
  autoseguro export --format markdown -o report.md
  autoseguro export --format yaml -o snapshot.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "markdown" && format != "yaml" {
			return fmt.Errorf("unsupported format: %s (use 'markdown' or 'yaml')", format)
		}

		ds, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		var data []byte
		now := time.Now()
		switch format {
		case "yaml":
			data, err = backup.ExportYAML(ds, now)
			if err != nil {
				return fmt.Errorf("failed to generate YAML: %w", err)
			}
		default:
			data = backup.ExportMarkdown(ds, now)
		}

		output, _ := cmd.Flags().GetString("output")
		return writeOutput(output, data, format)
	},
}

// writeOutput writes data to output, or to stdout when output is empty.
func writeOutput(output string, data []byte, what string) error {
	if output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for data export files
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", what, output)
	return nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "markdown", "output format (markdown, yaml)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
