// Package file provides the file-based configuration adapter.
// Configuration is persisted as TOML in the jsonstore config directory.
//
// Dotted keys such as "store.dir" are written as nested tables:
//
//	[store]
//	dir = "/home/me/.jsonstore/data"
package file
