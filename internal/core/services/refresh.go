package services

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
	"github.com/custodia-labs/jsonstore/internal/core/ports/driven"
	"github.com/custodia-labs/jsonstore/internal/core/ports/driving"
	"github.com/custodia-labs/jsonstore/internal/logger"
)

// Ensure Refresher implements the interface.
var _ driving.RefreshService = (*Refresher)(nil)

// Refresher reloads tracked store entries when their backing files change
// on disk. It is opt-in; without it the store only changes through Init.
type Refresher struct {
	store   *JSONStore
	watcher driven.ChangeWatcher
	dir     string

	mu      sync.RWMutex
	tracked map[string]domain.FileConfig // keyed by cleaned file path
}

// NewRefresher creates a Refresher watching dir for store.
func NewRefresher(store *JSONStore, watcher driven.ChangeWatcher, dir string) *Refresher {
	return &Refresher{
		store:   store,
		watcher: watcher,
		dir:     dir,
		tracked: make(map[string]domain.FileConfig),
	}
}

// Track registers cfg so changes to its backing file reload it.
func (r *Refresher) Track(cfg domain.FileConfig) {
	path := filepath.Clean(r.store.ResolvePath(cfg.File))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracked[path] = cfg
}

// Tracked returns the number of tracked names.
func (r *Refresher) Tracked() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tracked)
}

// Run reloads tracked entries until ctx is cancelled or the watcher stops.
// onRefresh, if non-nil, receives every successfully reloaded entry.
// Reload and watcher failures are logged and do not stop the loop. If the
// watcher stops on its own, the last watcher error is returned.
func (r *Refresher) Run(ctx context.Context, onRefresh func(domain.Entry)) error {
	paths, errs := r.watcher.Watch(ctx, r.dir)
	logger.Debug("Watching %s for %d files", r.dir, r.Tracked())

	var lastErr error
	for paths != nil || errs != nil {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-paths:
			if !ok {
				paths = nil
				continue
			}
			r.reload(ctx, path, onRefresh)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("Watch error: %v", err)
			lastErr = err
		}
	}
	if ctx.Err() != nil {
		return nil
	}
	return lastErr
}

func (r *Refresher) reload(ctx context.Context, path string, onRefresh func(domain.Entry)) {
	r.mu.RLock()
	cfg, ok := r.tracked[filepath.Clean(path)]
	r.mu.RUnlock()
	if !ok {
		return
	}

	snapshot, err := r.store.Init(ctx, cfg)
	if err != nil {
		logger.Warn("Reload of %q failed: %v", cfg.File, err)
		return
	}
	logger.Info("Reloaded %q", cfg.File)

	if onRefresh != nil {
		onRefresh(domain.Entry{File: cfg.File, Data: snapshot[cfg.File]})
	}
}
