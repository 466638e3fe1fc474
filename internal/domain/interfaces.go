// Package domain defines the narrow interfaces the core depends on, so the
// collaborators behind them (network, disk, shell) can be substituted in
// tests.
package domain

import "github.com/modular-tools/cli/internal/catalog"

// ConfigStore reads and writes the per-user key=value configuration.
type ConfigStore interface {
	// Get returns the value for a configuration key.
	Get(key string) (string, bool)

	// All returns all configuration values.
	All() (map[string]string, error)

	// Set sets a configuration value.
	Set(key, value string) error

	// Unset removes a configuration value.
	Unset(key string) error

	// Clear removes the configuration file entirely.
	Clear() error
}

// CatalogSource loads the unified command catalog and manages the dynamic
// cache behind it.
type CatalogSource interface {
	// Load returns the merged catalog.
	Load() (*catalog.Catalog, error)

	// SaveDynamic replaces the dynamic catalog cache wholesale.
	SaveDynamic(data []byte) error

	// RemoveDynamic deletes the dynamic catalog cache.
	RemoveDynamic() error
}

// LoginResult is what the gateway returns on a successful login.
type LoginResult struct {
	Token    string
	Version  string
	Catalog  []byte
	Warnings []string
}

// ExecResult is the outcome of one remotely-executed command.
type ExecResult struct {
	Message  string
	Warnings []string
}

// Gateway is the remote command-serving collaborator. Implementations
// translate remote failure codes into the local error taxonomy.
type Gateway interface {
	// Login authenticates and returns the session token plus the caller's
	// command catalog.
	Login(username, password string) (LoginResult, error)

	// Execute forwards a fully-specified command to the gateway.
	Execute(routePath string, args []string) (ExecResult, error)
}

// Logger defines logging operations.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// Application bundles the wired-up collaborators for one CLI invocation.
type Application struct {
	Config  ConfigStore
	Catalog CatalogSource
	Gateway Gateway
	Logger  Logger
}
