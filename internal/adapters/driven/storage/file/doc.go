// Package file provides the filesystem implementation of driven.JSONFiles.
//
// Every logical name is backed by its own JSON file under the configured
// data directory. Files are accessed through an afero.Fs so the adapter
// runs against the real disk (afero.NewOsFs) or an in-memory filesystem
// (afero.NewMemMapFs) in tests.
//
// Writes go to a temporary sibling file that is renamed over the target,
// so readers never observe a partially written file.
package file
