// Package paths resolves the per-user locations of the tool's metadata:
// configuration, the dynamic catalog cache, completions, and the log file.
package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "mcli"

// AppDataDir returns the per-user metadata directory. Uses os.UserConfigDir:
//   - Linux: $XDG_CONFIG_HOME/mcli or ~/.config/mcli
//   - macOS: ~/Library/Application Support/mcli
//   - Windows: %AppData%\mcli
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0o700)

	return path
}

// ConfigFilePath returns the location of the key=value configuration file.
func ConfigFilePath() string {
	return filepath.Join(AppDataDir(), "config")
}

// CatalogCachePath returns the location of the dynamic catalog cache written
// after a successful login.
func CatalogCachePath() string {
	return filepath.Join(AppDataDir(), "commands_meta.json")
}

// CompletionsDir returns the directory completion scripts are written to.
func CompletionsDir() string {
	return filepath.Join(AppDataDir(), "completions")
}

// LogFilePath returns the location of the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "mcli.log")
}
