// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - JSONFiles: Path resolution plus JSON read/write of backing files
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - ChangeWatcher: Notifies about files changed on disk. Without it,
//     the store is only refreshed by explicit Init calls.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
