// Package domain defines the core entities of the JSON store.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileConfig: A logical name plus its default value
//   - Entry: A logical name with the value loaded for it
//   - StoreSettings: Where and how entries are persisted
//   - FileError / KeyNotInStoreError: The store's error kinds
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
