package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/custodia-labs/jsonstore/internal/core/domain"
	"github.com/custodia-labs/jsonstore/internal/core/ports/driven"
)

// Ensure JSONFiles implements the interface.
var _ driven.JSONFiles = (*JSONFiles)(nil)

// tmpMarker separates a target file name from the random suffix of its
// temporary sibling.
const tmpMarker = ".tmp-"

// JSONFiles reads and writes one JSON file per logical name.
type JSONFiles struct {
	fs       afero.Fs
	settings domain.StoreSettings
}

// NewJSONFiles creates a JSONFiles over fsys using settings.
func NewJSONFiles(fsys afero.Fs, settings domain.StoreSettings) *JSONFiles {
	if settings.FileMode == 0 {
		settings.FileMode = domain.DefaultFileMode
	}
	settings.Extension = domain.NormaliseExtension(settings.Extension)
	return &JSONFiles{fs: fsys, settings: settings}
}

// NewOSJSONFiles creates a JSONFiles on the real filesystem and ensures the
// data directory exists.
func NewOSJSONFiles(settings domain.StoreSettings) (*JSONFiles, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	osfs := afero.NewOsFs()
	if err := osfs.MkdirAll(settings.DataDir, 0700); err != nil {
		return nil, domain.NewFileError(domain.FileErrorOther, "mkdir", settings.DataDir, err)
	}
	return NewJSONFiles(osfs, settings), nil
}

// Dir returns the data directory.
func (f *JSONFiles) Dir() string {
	return f.settings.DataDir
}

// ResolvePath joins the data directory and the file name of name.
func (f *JSONFiles) ResolvePath(name string) string {
	return filepath.Join(f.settings.DataDir, filepath.FromSlash(f.settings.FileName(name)))
}

// ReadJSON reads and decodes the file at path.
func (f *JSONFiles) ReadJSON(ctx context.Context, path string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewFileError(domain.FileErrorOther, "read", path, err)
	}

	raw, err := afero.ReadFile(f.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileError(domain.FileErrorNotFound, "read", path, err)
		}
		return nil, domain.NewFileError(domain.FileErrorOther, "read", path, err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, domain.NewFileError(domain.FileErrorOther, "read", path, err)
	}
	return v, nil
}

// WriteJSON encodes v and atomically replaces the file at path.
func (f *JSONFiles) WriteJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return domain.NewFileError(domain.FileErrorOther, "write", path, err)
	}

	raw, err := f.encode(v)
	if err != nil {
		return domain.NewFileError(domain.FileErrorOther, "write", path, err)
	}

	if err := f.fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return domain.NewFileError(domain.FileErrorOther, "write", path, err)
	}

	tmp := path + tmpMarker + uuid.NewString()
	if err := afero.WriteFile(f.fs, tmp, raw, f.settings.FileMode); err != nil {
		_ = f.fs.Remove(tmp)
		return domain.NewFileError(domain.FileErrorOther, "write", path, err)
	}
	if err := f.fs.Rename(tmp, path); err != nil {
		_ = f.fs.Remove(tmp)
		return domain.NewFileError(domain.FileErrorOther, "write", path, err)
	}
	return nil
}

// List walks the data directory and returns the logical name of every
// file carrying the configured extension.
func (f *JSONFiles) List(ctx context.Context) ([]string, error) {
	root := f.settings.DataDir
	ext := f.settings.Extension

	var names []string
	err := afero.Walk(f.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() || strings.Contains(info.Name(), tmpMarker) {
			return nil
		}
		if ext != "" && !strings.HasSuffix(info.Name(), ext) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		names = append(names, strings.TrimSuffix(filepath.ToSlash(rel), ext))
		return nil
	})
	if err != nil {
		return nil, domain.NewFileError(domain.FileErrorOther, "list", root, err)
	}

	sort.Strings(names)
	return names, nil
}

func (f *JSONFiles) encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if f.settings.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
