// Package watch implements driven.ChangeWatcher with fsnotify.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/jsonstore/internal/core/ports/driven"
	"github.com/custodia-labs/jsonstore/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// Watcher reports files created or written under a directory tree.
type Watcher struct {
	// Ignore filters out paths that should not be reported, e.g. the
	// temporary files used for atomic writes. May be nil.
	Ignore func(path string) bool
}

// New creates a Watcher that ignores hidden files and temporary write files.
func New() *Watcher {
	return &Watcher{Ignore: isTransient}
}

// Watch registers dir and its subdirectories and streams changed file
// paths until ctx is cancelled. Directories created later are added too.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan string, <-chan error) {
	paths := make(chan string)
	errs := make(chan error, 1)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		errs <- err
		close(paths)
		close(errs)
		return paths, errs
	}

	if err := addTree(fw, dir); err != nil {
		_ = fw.Close()
		errs <- err
		close(paths)
		close(errs)
		return paths, errs
	}

	go func() {
		defer close(paths)
		defer close(errs)
		defer fw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				path, report := w.handleEvent(fw, event)
				if !report {
					continue
				}
				select {
				case paths <- path:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				default:
					logger.Warn("Watcher error dropped: %v", err)
				}
			}
		}
	}()

	return paths, errs
}

// handleEvent decides whether event should be reported.
// New directories are registered so their files are watched as well.
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}

	path := filepath.Clean(event.Name)
	if w.Ignore != nil && w.Ignore(path) {
		return "", false
	}

	if event.Has(fsnotify.Create) {
		if isDir(path) {
			if err := addTree(fw, path); err != nil {
				logger.Warn("Failed to watch %s: %v", path, err)
			}
			return "", false
		}
	}

	logger.Debug("Change detected: %s (%s)", path, event.Op)
	return path, true
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isTransient reports hidden files and temporary files left by atomic writes.
func isTransient(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.Contains(base, ".tmp-")
}
