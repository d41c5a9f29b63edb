package app

import (
	"fmt"

	"github.com/custodia-labs/jsonstore/internal/adapters/driven/config/file"
	jsonfile "github.com/custodia-labs/jsonstore/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/jsonstore/internal/adapters/driven/watch"
	"github.com/custodia-labs/jsonstore/internal/adapters/driving/cli"
	"github.com/custodia-labs/jsonstore/internal/core/services"
	"github.com/custodia-labs/jsonstore/internal/logger"
)

// NewServices builds the services behind the CLI from the config file and
// global flags.
func NewServices(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	settingsSvc := services.NewSettingsService(configStore)

	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, err
	}
	if opts.DataDir != "" {
		settings.DataDir = opts.DataDir
	}
	logger.Debug("Config %s, data dir %s", configStore.Path(), settings.DataDir)

	files, err := jsonfile.NewOSJSONFiles(*settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open data dir: %w", err)
	}

	store := services.NewJSONStore(files)

	return &cli.Services{
		Store:    store,
		Settings: settingsSvc,
		Refresh:  services.NewRefresher(store, watch.New(), files.Dir()),
	}, nil
}
