// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - JSONStore: the in-memory cache of JSON values by logical name
//   - Refresher: optional reload of cached entries on file changes
//   - SettingsService: store settings backed by a ConfigStore
package services
