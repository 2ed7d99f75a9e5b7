// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StagingDir != "target/staging" {
		t.Errorf("StagingDir = %q, want default %q", cfg.StagingDir, "target/staging")
	}
	if cfg.GPG.Command != "gpg" {
		t.Errorf("GPG.Command = %q, want default %q", cfg.GPG.Command, "gpg")
	}
}

func TestLoadReadsCUEFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
staging_dir: "out/bundle"
files: ["dist/*.jar", "dist/*.pom"]

gpg: {
	command: "gpg2"
	args: ["--local-user", "CAFEBABE"]
}

hooks: {
	pre_release: "echo preparing"
}

bundle: {
	release_script: "echo releasing"
}

ui: {
	verbose: true
}
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.StagingDir != "out/bundle" {
		t.Errorf("StagingDir = %q, want %q", cfg.StagingDir, "out/bundle")
	}
	if len(cfg.Files) != 2 || cfg.Files[0] != "dist/*.jar" {
		t.Errorf("Files = %v", cfg.Files)
	}
	if cfg.GPG.Command != "gpg2" {
		t.Errorf("GPG.Command = %q, want %q", cfg.GPG.Command, "gpg2")
	}
	if len(cfg.GPG.Args) != 2 {
		t.Errorf("GPG.Args = %v", cfg.GPG.Args)
	}
	if cfg.Hooks.PreRelease != "echo preparing" {
		t.Errorf("Hooks.PreRelease = %q", cfg.Hooks.PreRelease)
	}
	if cfg.Bundle.ReleaseScript != "echo releasing" {
		t.Errorf("Bundle.ReleaseScript = %q", cfg.Bundle.ReleaseScript)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
}

func TestLoadExplicitFilePath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`staging_dir: "custom/dir"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StagingDir != "custom/dir" {
		t.Errorf("StagingDir = %q, want %q", cfg.StagingDir, "custom/dir")
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "absent.cue"),
	})
	if err == nil {
		t.Fatal("Load() error = nil, want missing-file failure")
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `staging_dir: 42`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("Load() error = nil, want schema violation")
	}
	if !strings.Contains(err.Error(), "load configuration") {
		t.Errorf("error %q missing operation context", err.Error())
	}
}

func TestLoadRejectsUnparseableHook(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `hooks: pre_release: "echo \"unclosed"`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("Load() error = nil, want hook validation failure")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error %v does not wrap ErrInvalidConfig", err)
	}
}

func TestLoadCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}, wantErr: false},
		{name: "blank staging dir", mutate: func(c *Config) { c.StagingDir = "  " }, wantErr: true},
		{name: "blank gpg command", mutate: func(c *Config) { c.GPG.Command = "" }, wantErr: true},
		{name: "bad hook script", mutate: func(c *Config) { c.Hooks.PostRelease = "echo \"unclosed" }, wantErr: true},
		{name: "good hook script", mutate: func(c *Config) { c.Hooks.PostRelease = "echo done" }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestOverrides(t *testing.T) {
	// Not parallel: mutates package-level overrides.
	t.Cleanup(Reset)

	dir := t.TempDir()
	writeConfig(t, dir, `staging_dir: "override/dir"`)
	SetConfigDirOverride(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StagingDir != "override/dir" {
		t.Errorf("StagingDir = %q, want %q", cfg.StagingDir, "override/dir")
	}

	path, err := ResolvedPath()
	if err != nil {
		t.Fatalf("ResolvedPath() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("ResolvedPath() = %q", path)
	}
}
