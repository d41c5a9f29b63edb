package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileConfig identifies a store entry and its backing file.
type FileConfig struct {
	// File is the logical name. It is both the store key and the
	// base name of the backing file.
	File string

	// Default is used when the backing file is missing or holds null.
	Default any
}

// Validate checks that the logical name is usable as a file name under
// the data directory.
func (c FileConfig) Validate() error {
	return ValidateName(c.File)
}

// Entry is a logical name paired with the value loaded for it.
type Entry struct {
	File string
	Data any
}

// ValidateName rejects empty names and names that would resolve outside
// the data directory.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: logical name is required", ErrInvalidInput)
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return fmt.Errorf("%w: logical name %q must be relative", ErrInvalidInput, name)
	}
	for _, part := range strings.FieldsFunc(name, isSeparator) {
		if part == ".." {
			return fmt.Errorf("%w: logical name %q escapes the data directory", ErrInvalidInput, name)
		}
	}
	return nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
