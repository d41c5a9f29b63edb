// Package app wires the driven adapters, core services and CLI together.
package app
