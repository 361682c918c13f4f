package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

// defaultDebounce collapses the burst of events editors emit for one save
const defaultDebounce = 200 * time.Millisecond

// Watcher reloads a catalog directory into a Store whenever a YAML file changes.
// A catalog that fails to load or validate is logged and the previous one kept.
type Watcher struct {
	dir      string
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onReload func(*Catalog)
}

// WatcherConfig configures a Watcher
type WatcherConfig struct {
	Dir   string
	Store *Store
	// Debounce defaults to 200ms
	Debounce time.Duration
	// OnReload is called after every successful reload
	OnReload func(*Catalog)
}

// Validate ensures all required fields are provided
func (c *WatcherConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Dir", c.Dir, vb)
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	return vb.Build()
}

// NewWatcher starts watching cfg.Dir. Call Run to process events.
func NewWatcher(cfg *WatcherConfig) (*Watcher, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid watcher config")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}
	if err := fw.Add(cfg.Dir); err != nil {
		_ = fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", cfg.Dir)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Watcher{
		dir:      cfg.Dir,
		store:    cfg.Store,
		watcher:  fw,
		debounce: debounce,
		onReload: cfg.OnReload,
	}, nil
}

// Run processes file events until ctx is done, then closes the watcher
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isCatalogFile(event.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Catalog watcher error", "dir", w.dir, "error", err)
		}
	}
}

func (w *Watcher) reload() {
	c, err := LoadDir(w.dir)
	if err != nil {
		slog.Error("Catalog reload failed, keeping previous catalog",
			"dir", w.dir,
			"error", err,
		)
		return
	}

	w.store.Replace(c)
	slog.Info("Catalog reloaded",
		"dir", w.dir,
		"enchantments", len(c.enchantments),
		"bosses", len(c.bosses),
	)
	if w.onReload != nil {
		w.onReload(c)
	}
}

func isCatalogFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
