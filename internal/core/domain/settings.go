package domain

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is appended to logical names to form file names.
const DefaultExtension = ".json"

// DefaultFileMode is the permission used for written JSON files.
const DefaultFileMode os.FileMode = 0o600

// StoreSettings configures where and how entries are persisted.
type StoreSettings struct {
	// DataDir is the directory holding one JSON file per logical name.
	DataDir string

	// Extension is appended to a logical name unless it already ends with it.
	Extension string

	// Indent pretty-prints written JSON.
	Indent bool

	// FileMode is the permission of newly written files.
	FileMode os.FileMode
}

// DefaultStoreSettings returns the default store settings.
// The data directory defaults to ~/.jsonstore/data, or a relative
// .jsonstore/data when the home directory cannot be determined.
func DefaultStoreSettings() StoreSettings {
	base := ".jsonstore"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".jsonstore")
	}

	return StoreSettings{
		DataDir:   filepath.Join(base, "data"),
		Extension: DefaultExtension,
		Indent:    true,
		FileMode:  DefaultFileMode,
	}
}

// NormaliseExtension returns ext with a leading dot, or empty if ext is blank.
func NormaliseExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// FileName returns the file name backing a logical name.
func (s StoreSettings) FileName(name string) string {
	ext := NormaliseExtension(s.Extension)
	if ext == "" || strings.HasSuffix(name, ext) {
		return name
	}
	return name + ext
}

// Validate checks the settings are usable.
func (s StoreSettings) Validate() error {
	if strings.TrimSpace(s.DataDir) == "" {
		return ErrInvalidInput
	}
	if s.FileMode&0o600 != 0o600 {
		return ErrInvalidInput
	}
	return nil
}
