package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
)

// mockJSONFiles is a mock implementation of driven.JSONFiles.
type mockJSONFiles struct {
	mu sync.Mutex

	data     any
	readErr  error
	writeErr error
	names    []string

	resolved []string
	written  map[string]any
}

func newMockJSONFiles() *mockJSONFiles {
	return &mockJSONFiles{written: make(map[string]any)}
}

func (m *mockJSONFiles) ResolvePath(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolved = append(m.resolved, name)
	return "/data/" + name + ".json"
}

func (m *mockJSONFiles) ReadJSON(_ context.Context, _ string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.data, nil
}

func (m *mockJSONFiles) WriteJSON(_ context.Context, path string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written[path] = v
	return nil
}

func (m *mockJSONFiles) List(_ context.Context) ([]string, error) {
	return m.names, nil
}

// stubLoad returns a loader that always yields entry or err.
func stubLoad(entry domain.Entry, err error) func(context.Context, domain.FileConfig) (domain.Entry, error) {
	return func(context.Context, domain.FileConfig) (domain.Entry, error) {
		if err != nil {
			return domain.Entry{}, err
		}
		return entry, nil
	}
}

// mockWatcher is a mock implementation of driven.ChangeWatcher.
type mockWatcher struct {
	paths chan string
	errs  chan error
	dir   string
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{
		paths: make(chan string),
		errs:  make(chan error, 1),
	}
}

func (m *mockWatcher) Watch(_ context.Context, dir string) (<-chan string, <-chan error) {
	m.dir = dir
	return m.paths, m.errs
}
