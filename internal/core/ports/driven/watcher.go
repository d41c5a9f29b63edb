package driven

import "context"

// ChangeWatcher reports backing files modified outside the store.
type ChangeWatcher interface {
	// Watch streams the paths of files created or written under dir
	// until ctx is cancelled. Both channels are closed when watching stops.
	Watch(ctx context.Context, dir string) (<-chan string, <-chan error)
}
