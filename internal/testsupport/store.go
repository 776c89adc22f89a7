package testsupport

import (
	"testing"

	"pipoca/internal/catalog"
	"pipoca/internal/config"
	"pipoca/internal/history"
	"pipoca/internal/logging"
)

// MustOpenCatalog opens the catalog store for tests.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.CatalogFile, logging.NewNop())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	return store
}

// MustOpenHistory opens the history store for tests and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
