package services

import (
	"context"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
	"github.com/custodia-labs/jsonstore/internal/core/ports/driven"
	"github.com/custodia-labs/jsonstore/internal/core/ports/driving"
	"github.com/custodia-labs/jsonstore/internal/logger"
)

// Ensure JSONStore implements the interface.
var _ driving.StoreService = (*JSONStore)(nil)

// JSONStore caches JSON values by logical name. Each value is backed by
// its own file, reached through the JSONFiles port.
//
// Put writes around the cache: a written value is only visible to Get
// after the name is loaded again with Init.
type JSONStore struct {
	files driven.JSONFiles

	mu    sync.RWMutex
	store map[string]any

	// load backs Init and InitAll. It is GetFile unless replaced in tests.
	load func(ctx context.Context, cfg domain.FileConfig) (domain.Entry, error)
}

// NewJSONStore creates an empty store reading and writing through files.
func NewJSONStore(files driven.JSONFiles) *JSONStore {
	s := &JSONStore{
		files: files,
		store: make(map[string]any),
	}
	s.load = s.GetFile
	return s
}

// GetFile reads the backing file of cfg.File.
//
// A file that is missing, empty or holds JSON null yields cfg.Default.
// Any other read failure is returned as is.
func (s *JSONStore) GetFile(ctx context.Context, cfg domain.FileConfig) (domain.Entry, error) {
	if err := cfg.Validate(); err != nil {
		return domain.Entry{}, err
	}

	path := s.files.ResolvePath(cfg.File)
	logger.Debug("Reading %q from %s", cfg.File, path)

	data, err := s.files.ReadJSON(ctx, path)
	if err != nil {
		if domain.IsFileNotFound(err) {
			logger.Debug("No file for %q, using default", cfg.File)
			return domain.Entry{File: cfg.File, Data: cfg.Default}, nil
		}
		return domain.Entry{}, err
	}

	if data == nil {
		logger.Debug("Empty file for %q, using default", cfg.File)
		return domain.Entry{File: cfg.File, Data: cfg.Default}, nil
	}

	return domain.Entry{File: cfg.File, Data: data}, nil
}

// Init loads cfg.File into the store, replacing any cached value, and
// returns a snapshot of the whole store.
func (s *JSONStore) Init(ctx context.Context, cfg domain.FileConfig) (map[string]any, error) {
	entry, err := s.load(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[entry.File] = entry.Data
	logger.Debug("Cached %q (%d entries)", entry.File, len(s.store))

	return maps.Clone(s.store), nil
}

// InitAll loads every cfg concurrently. The store is only updated when
// all loads succeed; otherwise the first error is returned.
func (s *JSONStore) InitAll(ctx context.Context, cfgs ...domain.FileConfig) (map[string]any, error) {
	entries := make([]domain.Entry, len(cfgs))

	g, gctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			entry, err := s.load(gctx, cfg)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("Loading %d files failed: %v", len(cfgs), err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range entries {
		s.store[entry.File] = entry.Data
	}
	logger.Debug("Cached %d files (%d entries)", len(entries), len(s.store))

	return maps.Clone(s.store), nil
}

// Get returns the cached value of cfg.File. It never performs I/O.
func (s *JSONStore) Get(cfg domain.FileConfig) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.store[cfg.File]
	if !ok {
		return nil, &domain.KeyNotInStoreError{Name: cfg.File}
	}
	return data, nil
}

// Put writes data to the backing file of cfg.File and returns data
// unchanged. Write failures are returned as is.
func (s *JSONStore) Put(ctx context.Context, cfg domain.FileConfig, data any) (any, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := s.files.ResolvePath(cfg.File)
	logger.Debug("Writing %q to %s", cfg.File, path)

	if err := s.files.WriteJSON(ctx, path, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Names returns the logical names of every backing file, whether cached
// or not.
func (s *JSONStore) Names(ctx context.Context) ([]string, error) {
	return s.files.List(ctx)
}

// Keys returns the cached logical names in sorted order.
func (s *JSONStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.store))
}

// Snapshot returns a copy of the store.
func (s *JSONStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.store)
}

// ResolvePath returns the backing file path of a logical name.
func (s *JSONStore) ResolvePath(name string) string {
	return s.files.ResolvePath(name)
}
