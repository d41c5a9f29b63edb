package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Store Errors.

	// ErrFileNotFound indicates the backing file of a logical name does not exist.
	// GetFile recovers from it by substituting the default value.
	ErrFileNotFound = fmt.Errorf("backing file %w", ErrNotFound)

	// ErrNotInStore indicates a logical name has not been loaded into the store.
	ErrNotInStore = errors.New("requested file not present in store")
)

// FileErrorKind classifies failures reported by a JSON file collaborator.
type FileErrorKind int

// Closed set of file error kinds.
const (
	// FileErrorOther is any failure that is not a missing file.
	FileErrorOther FileErrorKind = iota

	// FileErrorNotFound means the file does not exist.
	FileErrorNotFound
)

// String returns the string representation.
func (k FileErrorKind) String() string {
	switch k {
	case FileErrorNotFound:
		return "not_found"
	default:
		return "other"
	}
}

// FileError is returned by JSON file collaborators.
// A FileErrorNotFound matches ErrFileNotFound via errors.Is.
type FileError struct {
	Kind FileErrorKind
	Op   string
	Path string
	Err  error
}

// NewFileError wraps err for the given operation and path.
func NewFileError(kind FileErrorKind, op, path string, err error) *FileError {
	return &FileError{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFileNotFound for a not-found error.
func (e *FileError) Is(target error) bool {
	return target == ErrFileNotFound && e.Kind == FileErrorNotFound
}

// IsFileNotFound returns true if err reports a missing backing file.
func IsFileNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

// KeyNotInStoreError is returned by a store lookup for a name that was never loaded.
type KeyNotInStoreError struct {
	Name string
}

func (e *KeyNotInStoreError) Error() string {
	return ErrNotInStore.Error() + ": " + e.Name
}

// Is matches ErrNotInStore.
func (e *KeyNotInStoreError) Is(target error) bool {
	return target == ErrNotInStore
}
