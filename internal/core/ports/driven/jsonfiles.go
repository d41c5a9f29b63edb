package driven

import "context"

// JSONFiles reads and writes the JSON file backing each logical name.
type JSONFiles interface {
	// ResolvePath maps a logical name to the path of its backing file.
	// It is pure and performs no I/O.
	ResolvePath(name string) string

	// ReadJSON reads and decodes the file at path.
	// A missing file is reported as a *domain.FileError of kind
	// domain.FileErrorNotFound. An empty file or a JSON null decodes to nil.
	ReadJSON(ctx context.Context, path string) (any, error)

	// WriteJSON encodes v as JSON and writes it to path.
	WriteJSON(ctx context.Context, path string, v any) error

	// List returns the logical names of every backing file, sorted.
	List(ctx context.Context) ([]string, error)
}
