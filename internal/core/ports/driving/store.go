package driving

import (
	"context"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
)

// StoreService caches JSON values by logical name.
type StoreService interface {
	// GetFile reads the backing file of cfg.File, substituting cfg.Default
	// when the file is missing or holds no data. The store is not touched.
	GetFile(ctx context.Context, cfg domain.FileConfig) (domain.Entry, error)

	// Init loads cfg.File into the store and returns a snapshot of the store.
	// On failure the store is left unchanged.
	Init(ctx context.Context, cfg domain.FileConfig) (map[string]any, error)

	// InitAll loads several names. Either every entry is stored or none is.
	InitAll(ctx context.Context, cfgs ...domain.FileConfig) (map[string]any, error)

	// Get returns the cached value of cfg.File without performing I/O.
	Get(cfg domain.FileConfig) (any, error)

	// Put writes data to the backing file of cfg.File and returns data.
	// The cached value is not updated.
	Put(ctx context.Context, cfg domain.FileConfig, data any) (any, error)

	// Names returns the logical names of every backing file on disk.
	Names(ctx context.Context) ([]string, error)

	// Keys returns the cached logical names in sorted order.
	Keys() []string

	// Snapshot returns a copy of the store.
	Snapshot() map[string]any
}
