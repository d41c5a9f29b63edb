package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
	"github.com/custodia-labs/jsonstore/internal/core/ports/driven"
)

// Ensure JSONFiles implements the interface.
var _ driven.JSONFiles = (*JSONFiles)(nil)

// JSONFiles is an in-memory implementation of driven.JSONFiles for testing.
// Files are held as encoded JSON keyed by path.
type JSONFiles struct {
	mu    sync.RWMutex
	dir   string
	ext   string
	files map[string][]byte
}

// NewJSONFiles creates an empty in-memory file set rooted at dir.
// Logical names resolve to dir/name.json.
func NewJSONFiles(dir string) *JSONFiles {
	return &JSONFiles{
		dir:   dir,
		ext:   domain.DefaultExtension,
		files: make(map[string][]byte),
	}
}

// ResolvePath maps a logical name to its in-memory path.
func (f *JSONFiles) ResolvePath(name string) string {
	return path.Join(f.dir, domain.StoreSettings{Extension: f.ext}.FileName(name))
}

// ReadJSON decodes the file at p.
func (f *JSONFiles) ReadJSON(ctx context.Context, p string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewFileError(domain.FileErrorOther, "read", p, err)
	}

	f.mu.RLock()
	raw, ok := f.files[p]
	f.mu.RUnlock()
	if !ok {
		return nil, domain.NewFileError(domain.FileErrorNotFound, "read", p, nil)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, domain.NewFileError(domain.FileErrorOther, "read", p, err)
	}
	return v, nil
}

// WriteJSON encodes v and stores it at p.
func (f *JSONFiles) WriteJSON(ctx context.Context, p string, v any) error {
	if err := ctx.Err(); err != nil {
		return domain.NewFileError(domain.FileErrorOther, "write", p, err)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return domain.NewFileError(domain.FileErrorOther, "write", p, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[p] = raw
	return nil
}

// List returns the logical names of stored files, sorted.
func (f *JSONFiles) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	prefix := f.dir + "/"
	names := make([]string, 0, len(f.files))
	for p := range f.files {
		if !strings.HasPrefix(p, prefix) || !strings.HasSuffix(p, f.ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(p, prefix), f.ext))
	}
	sort.Strings(names)
	return names, nil
}

// SetRaw stores raw bytes at p, bypassing JSON encoding.
func (f *JSONFiles) SetRaw(p string, raw []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[p] = append([]byte(nil), raw...)
}

// Raw returns the bytes stored at p.
func (f *JSONFiles) Raw(p string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	raw, ok := f.files[p]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, domain.ErrFileNotFound)
	}
	return append([]byte(nil), raw...), nil
}

// Count returns the number of stored files.
func (f *JSONFiles) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.files)
}
