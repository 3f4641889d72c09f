// ABOUTME: Tests for the Charm KV backend against a local data directory
// ABOUTME: Sync is disabled so no Charm server is contacted

package kvstore

import (
	"testing"

	"github.com/charmbracelet/charm/kv"
)

func TestCharmStore_Local(t *testing.T) {
	t.Setenv("CHARM_DATA_DIR", t.TempDir())

	// Opening once initializes the local database and keys.
	initKV, err := kv.OpenWithDefaults("autoseguro-test")
	if err != nil {
		t.Skipf("charm kv unavailable in this environment: %v", err)
	}
	_ = initKV.Close()

	s, err := NewCharmStore(&CharmConfig{DBName: "autoseguro-test"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = s.Close() }()

	testStoreContract(t, s)
}
