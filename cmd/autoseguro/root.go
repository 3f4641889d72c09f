// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads config, opens the configured backend, and gates commands behind login

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/autoseguro/internal/auth"
	"github.com/harper/autoseguro/internal/backup"
	"github.com/harper/autoseguro/internal/config"
	"github.com/harper/autoseguro/internal/kvstore"
	"github.com/harper/autoseguro/internal/logging"
	"github.com/harper/autoseguro/internal/staleness"
	"github.com/harper/autoseguro/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Command annotations read by the root pre-run hook.
const (
	annotationPublic  = "public"  // runs without login
	annotationNoStore = "nostore" // does not open the data store
)

var (
	cfg     *config.Config
	kv      kvstore.Store
	store   *storage.Store
	engine  *backup.Engine
	session *auth.Session
	logger  = zap.NewNop()

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "autoseguro",
	Short: "Auto insurance records with spreadsheet backups",
	Long: `
 █████╗ ██╗   ██╗████████╗ ██████╗ ███████╗███████╗ ██████╗ ██╗   ██╗██████╗  ██████╗
██╔══██╗██║   ██║╚══██╔══╝██╔═══██╗██╔════╝██╔════╝██╔════╝ ██║   ██║██╔══██╗██╔═══██╗
███████║██║   ██║   ██║   ██║   ██║███████╗█████╗  ██║  ███╗██║   ██║██████╔╝██║   ██║
██╔══██║██║   ██║   ██║   ██║   ██║╚════██║██╔══╝  ██║   ██║██║   ██║██╔══██╗██║   ██║
██║  ██║╚██████╔╝   ██║   ╚██████╔╝███████║███████╗╚██████╔╝╚██████╔╝██║  ██║╚██████╔╝
╚═╝  ╚═╝ ╚═════╝    ╚═╝    ╚═════╝ ╚══════╝╚══════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝ ╚═════╝

     Clients, vehicles, policies and claims for a small insurance office

Examples:
  autoseguro login
  autoseguro client add --name "Maria Souza" --cpf 987.654.321-00
  autoseguro vehicle add --plate XYZ-9876 --model "Honda Civic" --client <id>
  autoseguro status
  autoseguro backup --dir ~/backups
  autoseguro import ~/backups/autoseguro_backup_2024-06-10.xlsx`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l

		if cmd.Annotations[annotationNoStore] == "true" {
			return nil
		}

		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		kv, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		wire(kv)
		logger.Debug("storage opened",
			zap.String("backend", cfg.GetBackend()),
			zap.String("data_dir", cfg.GetDataDir()))

		if cmd.Annotations[annotationPublic] == "true" {
			return nil
		}
		return requireLogin()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		if kv != nil {
			err := kv.Close()
			kv = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging")
}

// wire builds the record store, backup engine and session on top of s.
func wire(s kvstore.Store) {
	store = storage.NewStore(s, logger)
	engine = backup.NewEngine(store, staleness.NewTracker(s), backup.WithLogger(logger))
	session = auth.NewSession(s)
}

func requireLogin() error {
	err := session.Require()
	if errors.Is(err, auth.ErrNotAuthenticated) {
		return fmt.Errorf("%w: run 'autoseguro login' first", err)
	}
	return err
}

// lookupError reports a missing record by name and passes storage failures
// through.
func lookupError(kind, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s '%s' not found", kind, id)
	}
	return fmt.Errorf("failed to load %s '%s': %w", kind, id, err)
}

// staleAfterDays returns the configured backup warning threshold.
func staleAfterDays() int {
	if cfg == nil {
		return staleness.DefaultThresholdDays
	}
	return cfg.GetStaleAfterDays()
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
