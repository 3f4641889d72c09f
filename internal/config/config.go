// ABOUTME: AutoSeguro configuration management with backend selection
// ABOUTME: Handles settings, operator credentials, and the storage backend factory

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/autoseguro/internal/auth"
	"github.com/harper/autoseguro/internal/kvstore"
	"github.com/harper/autoseguro/internal/staleness"
)

// Config stores autoseguro configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts autoseguro.db here, badger uses a badger/ subdirectory.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/autoseguro.
	DataDir string `json:"data_dir,omitempty"`

	// StaleAfterDays is the backup age, in days, that triggers a warning.
	StaleAfterDays int `json:"stale_after_days,omitempty"`

	// Username is the operator login. Defaults to admin.
	Username string `json:"username,omitempty"`

	// PasswordHash is the bcrypt hash of the operator password.
	// Empty means the default password.
	PasswordHash string `json:"password_hash,omitempty"`

	// CharmHost is the Charm server used by the charm backend.
	// CHARM_HOST overrides it.
	CharmHost string `json:"charm_host,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return kvstore.BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetStaleAfterDays returns the staleness threshold, defaulting to 7.
func (c *Config) GetStaleAfterDays() int {
	if c.StaleAfterDays <= 0 {
		return staleness.DefaultThresholdDays
	}
	return c.StaleAfterDays
}

// GetCharmHost returns the Charm server, preferring CHARM_HOST.
func (c *Config) GetCharmHost() string {
	if host := os.Getenv("CHARM_HOST"); host != "" {
		return host
	}
	if c.CharmHost != "" {
		return c.CharmHost
	}
	return kvstore.DefaultCharmHost
}

// defaultDataDir returns the default XDG data directory for autoseguro.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "autoseguro")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore opens the key-value substrate for the configured backend.
func (c *Config) OpenStore() (kvstore.Store, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens a specific backend under the configured data directory.
func (c *Config) OpenBackend(backend string) (kvstore.Store, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case kvstore.BackendSQLite:
		return kvstore.NewSQLiteStore(filepath.Join(dataDir, kvstore.SQLiteFilename))
	case kvstore.BackendBadger:
		return kvstore.NewBadgerStore(filepath.Join(dataDir, kvstore.BadgerDirname))
	case kvstore.BackendCharm:
		cfg := kvstore.DefaultCharmConfig()
		cfg.Host = c.GetCharmHost()
		return kvstore.NewCharmStore(cfg)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// Authenticator returns the operator credential check.
func (c *Config) Authenticator() (auth.Authenticator, error) {
	return auth.NewStaticAuthenticator(c.Username, c.PasswordHash)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "autoseguro", "config.json")
}

// Load reads config from disk. A missing file is replaced by the defaults.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from XDG dirs
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{Backend: kvstore.BackendSQLite}
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(path, data)
}

// atomicWrite writes data to a temp file in the target directory and renames
// it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
