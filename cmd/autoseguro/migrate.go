// ABOUTME: Migration command for copying records between storage backends
// ABOUTME: Supports sqlite, badger, and charm with safety checks on the target directory

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/autoseguro/internal/auth"
	"github.com/harper/autoseguro/internal/config"
	"github.com/harper/autoseguro/internal/kvstore"
	"github.com/harper/autoseguro/internal/staleness"
	"github.com/harper/autoseguro/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate records between storage backends",
	Long: `Copy all records, the last backup time and the login session from the
currently configured backend to a different backend.

Does NOT update the config file; verify the migration was successful then
update config.json manually.

Examples:
  autoseguro migrate --to badger
  autoseguro migrate --to sqlite --data-dir ~/autoseguro-sqlite
  autoseguro migrate --to charm`,
	RunE: runMigrate,
}

var (
	migrateTo      string
	migrateDataDir string
	migrateForce   bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend ("+strings.Join(kvstore.Backends, ", ")+")")
	migrateCmd.Flags().StringVar(&migrateDataDir, "data-dir", "", "target data directory (defaults to current config data_dir)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow writing into a non-empty target location")
	_ = migrateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	sourceBackend := cfg.GetBackend()
	targetBackend := migrateTo

	if !slices.Contains(kvstore.Backends, targetBackend) {
		return fmt.Errorf("invalid target backend %q: must be one of %s", targetBackend, strings.Join(kvstore.Backends, ", "))
	}

	target := *cfg
	if migrateDataDir != "" {
		target.DataDir = config.ExpandPath(migrateDataDir)
	}
	if targetBackend == sourceBackend && target.GetDataDir() == cfg.GetDataDir() {
		return fmt.Errorf("target backend %q is the same as the current backend", targetBackend)
	}

	// Only file backends live in the data directory.
	if targetBackend != kvstore.BackendCharm {
		location, hasData, err := targetHasData(&target, targetBackend)
		if err != nil {
			return fmt.Errorf("check target directory: %w", err)
		}
		if hasData && !migrateForce {
			return fmt.Errorf("target %q already has data; use --force to overwrite", location)
		}
	}

	dst, err := target.OpenBackend(targetBackend)
	if err != nil {
		return fmt.Errorf("open target storage (%s): %w", targetBackend, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: closing target storage: %v\n", cerr)
		}
	}()

	color.Yellow("Migrating autoseguro records:")
	fmt.Printf("  Source:  %s (%s)\n", sourceBackend, cfg.GetDataDir())
	fmt.Printf("  Target:  %s (%s)\n", targetBackend, target.GetDataDir())
	fmt.Println()

	summary, err := storage.MigrateData(kv, dst, staleness.Key, auth.SessionKey)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	color.Green("Migration complete!")
	fmt.Printf("  Clients:  %d\n", summary.Clients)
	fmt.Printf("  Vehicles: %d\n", summary.Vehicles)
	fmt.Printf("  Policies: %d\n", summary.Policies)
	fmt.Printf("  Claims:   %d\n", summary.Claims)
	fmt.Printf("  Keys:     %d\n", summary.Keys)
	fmt.Println()
	color.Yellow("Note: config.json was NOT updated. To switch to the new backend, edit:")
	fmt.Printf("  %s\n", config.GetConfigPath())
	fmt.Printf("  Set \"backend\": %q", targetBackend)
	if migrateDataDir != "" {
		fmt.Printf(" and \"data_dir\": %q", migrateDataDir)
	}
	fmt.Println()

	return nil
}

// targetHasData reports whether a file backend already has data at its location.
func targetHasData(c *config.Config, backend string) (string, bool, error) {
	if backend == kvstore.BackendBadger {
		dir := filepath.Join(c.GetDataDir(), kvstore.BadgerDirname)
		nonEmpty, err := storage.IsDirNonEmpty(dir)
		return dir, nonEmpty, err
	}

	path := filepath.Join(c.GetDataDir(), kvstore.SQLiteFilename)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, true, nil
	case os.IsNotExist(err):
		return path, false, nil
	default:
		return path, false, err
	}
}
