package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-raid/internal/catalog"
)

func writeCatalog(t *testing.T, dir, bosses string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.EnchantmentsFile), []byte(minimalEnchantments), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.BossesFile), []byte(bosses), 0o600))
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, minimalBosses)

	initial, err := catalog.LoadDir(dir)
	require.NoError(t, err)
	store := catalog.NewStore(initial)

	reloaded := make(chan struct{}, 1)
	w, err := catalog.NewWatcher(&catalog.WatcherConfig{
		Dir:      dir,
		Store:    store,
		Debounce: 10 * time.Millisecond,
		OnReload: func(*catalog.Catalog) {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	writeCatalog(t, dir, `
bosses:
  - {id: second-boss, shield: 500, time_limit: "00:30", raid_duration_seconds: 60, max_party_size: 1}
`)

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}

	_, err = store.Boss("second-boss")
	assert.NoError(t, err)
}

func TestWatcherKeepsPreviousCatalogOnInvalidData(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, minimalBosses)

	initial, err := catalog.LoadDir(dir)
	require.NoError(t, err)
	store := catalog.NewStore(initial)

	w, err := catalog.NewWatcher(&catalog.WatcherConfig{Dir: dir, Store: store, Debounce: 10 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeCatalog(t, dir, "bosses: [")
	time.Sleep(200 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Same(t, initial, store.Current())
}

func TestNewWatcherValidation(t *testing.T) {
	_, err := catalog.NewWatcher(nil)
	assert.Error(t, err)

	_, err = catalog.NewWatcher(&catalog.WatcherConfig{Dir: t.TempDir()})
	assert.ErrorContains(t, err, "Store")

	_, err = catalog.NewWatcher(&catalog.WatcherConfig{Dir: filepath.Join(t.TempDir(), "missing"), Store: &catalog.Store{}})
	assert.Error(t, err)
}
