// Package cli is the cobra command-line adapter. Commands drive the core
// through the ports in internal/core/ports/driving; the services behind
// them are built lazily by a Factory once global flags are parsed.
package cli
