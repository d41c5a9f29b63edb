package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jsonstore/internal/core/ports/driving"
	"github.com/custodia-labs/jsonstore/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flag values.
var (
	verbose   bool
	dataDir   string
	configDir string
)

// Options carries global flag values to the service factory.
type Options struct {
	// DataDir overrides the configured data directory when non-empty.
	DataDir string

	// ConfigDir is the directory holding config.toml. Empty means the default.
	ConfigDir string
}

// Services holds the ports the commands drive.
type Services struct {
	Store    driving.StoreService
	Settings driving.SettingsService
	Refresh  driving.RefreshService
}

// Factory builds the services once flags are parsed.
type Factory func(Options) (*Services, error)

var (
	factory Factory
	deps    *Services
)

var rootCmd = &cobra.Command{
	Use:   "jsonstore",
	Short: "Cache and persist JSON values by name",
	Long: `jsonstore keeps one JSON file per logical name.

Values are loaded into an in-memory store, falling back to a default when
the file is missing or empty, and written back to disk as JSON.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "data directory (overrides store.dir)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.jsonstore)")
}

// SetFactory sets the function used to build services on first use.
func SetFactory(f Factory) {
	factory = f
	deps = nil
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// services returns the wired services, building them on first use.
func services() (*Services, error) {
	if deps != nil {
		return deps, nil
	}
	if factory == nil {
		return nil, errors.New("services not configured")
	}

	built, err := factory(Options{DataDir: dataDir, ConfigDir: configDir})
	if err != nil {
		return nil, err
	}
	deps = built
	return deps, nil
}
