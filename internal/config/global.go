// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// Package-level overrides set by the CLI (--config) and by tests.
// os.UserHomeDir() doesn't reliably respect the HOME environment variable
// on all platforms, so tests override the directory directly.
var (
	configDirOverride      string
	configFilePathOverride string
)

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	configFilePathOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride forces loading from a specific config file,
// as set by the --config flag.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// Load resolves configuration with the current overrides applied.
func Load() (*Config, error) {
	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	return cfg, err
}

// ResolvedPath returns the path of the config file Load would read, or
// "" when only defaults apply.
func ResolvedPath() (string, error) {
	_, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	return path, err
}
