package driving

import (
	"context"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
)

// RefreshService reloads store entries when their backing files change.
type RefreshService interface {
	// Track registers cfg for reloading.
	Track(cfg domain.FileConfig)

	// Run reloads tracked entries until ctx is cancelled.
	// onRefresh receives each reloaded entry.
	Run(ctx context.Context, onRefresh func(domain.Entry)) error
}
