// ABOUTME: Tests for autoseguro config functionality
// ABOUTME: Verifies first-run defaults, field round trips, backend factory, and credentials

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/autoseguro/internal/auth"
	"github.com/harper/autoseguro/internal/kvstore"
)

// useTempConfig points the XDG config and data homes at a temp directory.
func useTempConfig(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("XDG_DATA_HOME", tmpDir)
	return tmpDir
}

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	tmpDir := useTempConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed on non-existent config: %v", err)
	}
	if cfg.GetBackend() != kvstore.BackendSQLite {
		t.Errorf("expected default backend sqlite, got %q", cfg.GetBackend())
	}
	if cfg.GetDataDir() != filepath.Join(tmpDir, "autoseguro") {
		t.Errorf("expected XDG data dir, got %q", cfg.GetDataDir())
	}
	if cfg.GetStaleAfterDays() != 7 {
		t.Errorf("expected 7 stale days, got %d", cfg.GetStaleAfterDays())
	}

	path := GetConfigPath()
	if path != filepath.Join(tmpDir, "autoseguro", "config.json") {
		t.Errorf("unexpected config path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file to be auto-created: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("auto-created config is not valid JSON: %v", err)
	}
	if raw["backend"] != "sqlite" {
		t.Errorf("expected backend 'sqlite' in file, got %v", raw["backend"])
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	useTempConfig(t)
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("invalid json {{{"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestSaveAndLoad_AllFields(t *testing.T) {
	useTempConfig(t)
	want := Config{
		Backend:        "badger",
		DataDir:        "~/seguros",
		StaleAfterDays: 14,
		Username:       "corretor",
		PasswordHash:   "$2a$10$abcdefghijklmnopqrstuv",
		CharmHost:      "charm.example.com",
	}

	if err := want.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, want)
	}

	data, _ := os.ReadFile(GetConfigPath())
	for _, key := range []string{`"data_dir"`, `"stale_after_days"`, `"password_hash"`, `"charm_host"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in config file", key)
		}
	}

	entries, _ := os.ReadDir(filepath.Dir(GetConfigPath()))
	if len(entries) != 1 {
		t.Errorf("expected only config.json after save, got %v", entries)
	}
}

func TestSave_UnwritableDirectory(t *testing.T) {
	// A regular file where a directory is expected fails even for root.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(blocker, "sub"))

	if err := (&Config{}).Save(); err == nil {
		t.Error("expected error when saving to unwritable directory")
	}
}

func TestGetters(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("cannot get home dir: %v", err)
	}
	t.Setenv("CHARM_HOST", "")

	cfg := &Config{DataDir: "~/seguros", StaleAfterDays: -3, CharmHost: "charm.example.com"}
	if got := cfg.GetDataDir(); got != filepath.Join(home, "seguros") {
		t.Errorf("expected tilde expanded, got %q", got)
	}
	if got := cfg.GetStaleAfterDays(); got != 7 {
		t.Errorf("expected default for non-positive value, got %d", got)
	}
	if got := cfg.GetCharmHost(); got != "charm.example.com" {
		t.Errorf("expected configured host, got %q", got)
	}
	if got := (&Config{}).GetCharmHost(); got != kvstore.DefaultCharmHost {
		t.Errorf("expected default charm host, got %q", got)
	}

	t.Setenv("CHARM_HOST", "env.example.com")
	if got := cfg.GetCharmHost(); got != "env.example.com" {
		t.Errorf("expected CHARM_HOST to win, got %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("cannot get home dir: %v", err)
	}

	tests := map[string]string{
		"~/foo":          filepath.Join(home, "foo"),
		"~":              home,
		"/absolute/path": "/absolute/path",
		"":               "",
	}
	for in, want := range tests {
		if got := ExpandPath(in); got != want {
			t.Errorf("ExpandPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenBackend(t *testing.T) {
	tests := []struct {
		backend  string
		artifact string
	}{
		{kvstore.BackendSQLite, kvstore.SQLiteFilename},
		{kvstore.BackendBadger, kvstore.BadgerDirname},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			dataDir := filepath.Join(t.TempDir(), "nested")
			cfg := &Config{Backend: tt.backend, DataDir: dataDir}

			store, err := cfg.OpenStore()
			if err != nil {
				t.Fatalf("OpenStore failed: %v", err)
			}
			defer func() { _ = store.Close() }()

			if _, err := os.Stat(filepath.Join(dataDir, tt.artifact)); err != nil {
				t.Errorf("expected %s in data dir: %v", tt.artifact, err)
			}
		})
	}
}

func TestOpenBackend_Unknown(t *testing.T) {
	cfg := &Config{Backend: "markdown", DataDir: t.TempDir()}

	_, err := cfg.OpenStore()
	if err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Errorf("expected 'unknown backend' error, got %v", err)
	}
}

func TestAuthenticatorDefaults(t *testing.T) {
	a, err := (&Config{}).Authenticator()
	if err != nil {
		t.Fatalf("Authenticator failed: %v", err)
	}
	if err := a.Authenticate("admin", "103020"); err != nil {
		t.Errorf("default credentials rejected: %v", err)
	}
}

func TestAuthenticatorConfiguredHash(t *testing.T) {
	hash, err := auth.HashPassword("segredo")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg := &Config{Username: "Corretor", PasswordHash: hash}

	a, err := cfg.Authenticator()
	if err != nil {
		t.Fatalf("Authenticator failed: %v", err)
	}
	if err := a.Authenticate("corretor", "segredo"); err != nil {
		t.Errorf("configured credentials rejected: %v", err)
	}
	if err := a.Authenticate("admin", "103020"); err == nil {
		t.Error("default credentials should not work once configured")
	}
}

func TestAuthenticatorInvalidHash(t *testing.T) {
	if _, err := (&Config{PasswordHash: "plain-text"}).Authenticator(); err == nil {
		t.Error("expected error for a password hash that is not bcrypt")
	}
}
