// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"stagehand-cli/internal/hooks"
)

// ErrInvalidConfig is the sentinel error wrapped by config validation errors.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the resolved stagehand configuration.
	Config struct {
		// StagingDir is where the release bundle is assembled.
		StagingDir string `mapstructure:"staging_dir"`
		// Files are globs selecting the artifacts to publish.
		Files []string `mapstructure:"files"`

		GPG    GPGConfig    `mapstructure:"gpg"`
		Hooks  HooksConfig  `mapstructure:"hooks"`
		Bundle BundleConfig `mapstructure:"bundle"`
		UI     UIConfig     `mapstructure:"ui"`
	}

	// GPGConfig selects the gpg executable and signing arguments.
	GPGConfig struct {
		// Command is the gpg executable name or path.
		Command string `mapstructure:"command"`
		// Args are extra arguments for signing invocations (e.g. --local-user).
		Args []string `mapstructure:"args"`
	}

	// HooksConfig holds the POSIX snippets run around a tag release.
	HooksConfig struct {
		PreRelease  string `mapstructure:"pre_release"`
		PostRelease string `mapstructure:"post_release"`
	}

	// BundleConfig holds the scripts driving the external staging service.
	BundleConfig struct {
		CleanScript   string `mapstructure:"clean_script"`
		ReleaseScript string `mapstructure:"release_script"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidConfigError reports a semantically invalid configuration
	// value that the CUE schema cannot express.
	InvalidConfigError struct {
		Field  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the built-in defaults used when no config file
// is present.
func DefaultConfig() *Config {
	return &Config{
		StagingDir: "target/staging",
		Files:      nil,
		GPG:        GPGConfig{Command: "gpg"},
	}
}

// Validate checks constraints the CUE schema cannot express: non-blank
// required strings and parseable hook scripts.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StagingDir) == "" {
		return &InvalidConfigError{Field: "staging_dir", Reason: "must not be blank"}
	}
	if strings.TrimSpace(c.GPG.Command) == "" {
		return &InvalidConfigError{Field: "gpg.command", Reason: "must not be blank"}
	}

	for name, script := range map[string]string{
		"hooks.pre_release":      c.Hooks.PreRelease,
		"hooks.post_release":     c.Hooks.PostRelease,
		"bundle.clean_script":    c.Bundle.CleanScript,
		"bundle.release_script":  c.Bundle.ReleaseScript,
	} {
		if script == "" {
			continue
		}
		if err := hooks.Validate(name, script); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}
	return nil
}
