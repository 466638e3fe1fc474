// Package app assembles the application from its collaborators: the config
// store, the catalog store, the gateway client and the logger.
package app

import (
	"github.com/spf13/afero"

	"github.com/modular-tools/cli/internal/catalog"
	"github.com/modular-tools/cli/internal/config"
	"github.com/modular-tools/cli/internal/domain"
	"github.com/modular-tools/cli/internal/log"
	"github.com/modular-tools/cli/internal/paths"
	"github.com/modular-tools/cli/internal/remote"
)

// Options adjusts how the application is assembled. The zero value builds
// against the real filesystem and the per-user data directory.
type Options struct {
	// Fs substitutes the filesystem backing both stores. Nil means the OS
	// filesystem.
	Fs afero.Fs

	// ConfigPath and CatalogPath override the per-user file locations.
	// Empty means the defaults under the application data directory.
	ConfigPath  string
	CatalogPath string

	// LogPath overrides where the file logger writes when logging is
	// enabled in the configuration.
	LogPath string
}

// New builds the application. The gateway client picks up whatever address
// and token the configuration currently holds; before setup both are empty
// and the client reports the gateway as unconfigured on first use.
func New(opts Options) (*domain.Application, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = paths.ConfigFilePath()
	}
	catalogPath := opts.CatalogPath
	if catalogPath == "" {
		catalogPath = paths.CatalogCachePath()
	}

	cfg := config.NewStore(fs, configPath)

	logger, err := newLogger(cfg, opts.LogPath)
	if err != nil {
		return nil, err
	}

	// credentials and tokens are marked hidden and never reach the log
	if values, err := cfg.All(); err == nil {
		for _, k := range config.Keys {
			if k.Hidden {
				continue
			}
			if v, ok := values[k.Name]; ok {
				logger.Debug("config %s=%s", k.Name, v)
			}
		}
	}

	address, _ := cfg.Get("api_address")
	token, _ := cfg.Get("access_token")

	return &domain.Application{
		Config:  cfg,
		Catalog: catalog.NewStore(fs, catalogPath),
		Gateway: remote.NewClient(address, token),
		Logger:  logger,
	}, nil
}

// Close releases what the application holds open. Only the file logger
// keeps a handle; everything else is stateless between invocations.
func Close(a *domain.Application) error {
	if a == nil || a.Logger == nil {
		return nil
	}
	return a.Logger.Close()
}

// newLogger returns the file logger when the configuration asks for one.
// The value of enable_log doubles as the minimum level: "true" enables at
// the default level, any level name enables at that level.
func newLogger(cfg *config.Store, logPath string) (domain.Logger, error) {
	setting, ok := cfg.Get("enable_log")
	if !ok || setting == "" || setting == "false" {
		return log.NopLogger{}, nil
	}

	level := log.LevelInfo
	if setting != "true" {
		level = log.ParseLevel(setting)
	}

	if logPath == "" {
		logPath = paths.LogFilePath()
	}
	logger, err := log.New(logPath, level)
	if err != nil {
		// a broken log destination must not take the tool down
		return log.NopLogger{}, nil
	}
	// packages without an injected logger reach this one through the
	// package-level functions
	log.SetGlobal(logger)
	return logger, nil
}
