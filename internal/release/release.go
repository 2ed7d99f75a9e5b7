// SPDX-License-Identifier: MPL-2.0

// Package release orchestrates the publishing flow: gate on the secure CI
// context, import the signing key, then sign, checksum, and sync
// artifacts into the staging bundle, releasing the bundle on tag pushes.
//
// Everything here is sequential and synchronous; each step runs to
// completion before the next begins, and any failure is terminal for the
// invocation. Callers decide whether to retry the whole run.
package release

import (
	"context"
	"path/filepath"

	"stagehand-cli/internal/cienv"
	"stagehand-cli/internal/issue"
	"stagehand-cli/internal/staging"

	"github.com/charmbracelet/log"
)

const (
	// ModeRelease publishes a fixed version from a tag push.
	ModeRelease Mode = "release"
	// ModeSnapshot publishes a provisional version from a branch build.
	ModeSnapshot Mode = "snapshot"
)

type (
	// Mode describes which publishing path a run took.
	Mode string

	// KeyImporter imports the PGP signing key from the CI secret.
	KeyImporter interface {
		ImportSecretKey(ctx context.Context) error
	}

	// Signer produces signature files for artifacts.
	Signer interface {
		Sign(ctx context.Context, files []string) ([]string, error)
	}

	// Checksummer produces digest sidecar files for artifacts.
	Checksummer interface {
		Sum(ctx context.Context, files []string) ([]string, error)
	}

	// Syncer reconciles files into the staging bundle directory.
	Syncer interface {
		Sync(ctx context.Context, targetDir string, files []string, opts staging.SyncOptions) (*staging.Report, error)
	}

	// Bundle drives the external release-staging service.
	Bundle interface {
		Clean(ctx context.Context) error
		Release(ctx context.Context) error
	}

	// HookRunner executes configured hook scripts.
	HookRunner interface {
		Run(ctx context.Context, name, script string) error
	}

	// Driver wires the collaborators for one release invocation.
	Driver struct {
		// Env is the environment lookup; defaults to the process environment.
		Env cienv.Env
		// Logger receives progress output; defaults to log.Default().
		Logger *log.Logger

		// StagingDir is where the bundle is assembled.
		StagingDir string
		// Files are globs selecting the artifacts to publish, resolved
		// relative to WorkDir.
		Files []string
		// WorkDir anchors relative globs; defaults to the process cwd.
		WorkDir string
		// PreReleaseHook and PostReleaseHook run around tag releases.
		PreReleaseHook  string
		PostReleaseHook string

		Importer    KeyImporter
		Signer      Signer
		Checksummer Checksummer
		Syncer      Syncer
		Bundle      Bundle
		Hooks       HookRunner

		// VersionProbe reports the gpg version for the run log; optional.
		VersionProbe func(ctx context.Context) (string, error)
	}

	// Summary reports what a run published.
	Summary struct {
		Mode   Mode
		Tag    string
		Files  []string
		Report *staging.Report
	}
)

func (d *Driver) env() cienv.Env {
	if d.Env != nil {
		return d.Env
	}
	return cienv.OS()
}

func (d *Driver) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

// Run executes the release flow for the given build version.
func (d *Driver) Run(ctx context.Context, version string) (*Summary, error) {
	env := d.env()
	logger := d.logger()

	// The secure gate comes first: without restricted variables nothing
	// below may run, not even the key import.
	if !cienv.IsSecure(env) {
		return nil, issue.NewErrorContext().
			WithOperation("run release").
			WithSuggestion("Add PGP_SECRET to your pipeline's secret variables").
			WithSuggestion("Secrets are withheld from fork builds on most providers").
			Wrap(errNoSecureContext).
			BuildError()
	}

	logger.Info("classified environment",
		"provider", cienv.Identify(env),
		"tag", cienv.IsTag(env),
		"branch", cienv.CurrentBranch(env))

	if d.VersionProbe != nil {
		if v, err := d.VersionProbe(ctx); err == nil {
			logger.Info("gpg available", "version", v)
		} else {
			logger.Debug("gpg version probe failed", "err", err)
		}
	}

	if err := d.Importer.ImportSecretKey(ctx); err != nil {
		return nil, err
	}

	artifacts, err := d.resolveArtifacts()
	if err != nil {
		return nil, err
	}

	switch {
	case cienv.IsTag(env):
		return d.releaseTag(ctx, env, artifacts)
	case !cienv.IsSnapshotVersion(version):
		return nil, issue.NewErrorContext().
			WithOperation("publish from branch").
			WithResource(version).
			WithSuggestion("Use a -SNAPSHOT version on branches; tag pushes carry release versions").
			WithSuggestion("Push a tag if you intended to cut a release").
			Wrap(errNotSnapshot).
			BuildError()
	default:
		return d.publishSnapshot(ctx, artifacts)
	}
}

// releaseTag runs the full bundle flow for a tag push.
func (d *Driver) releaseTag(ctx context.Context, env cienv.Env, artifacts []string) (*Summary, error) {
	logger := d.logger()
	tag := cienv.StripRefPrefix(cienv.ReleaseTag(env))
	logger.Info("releasing tag", "tag", tag)

	if d.PreReleaseHook != "" {
		if err := d.Hooks.Run(ctx, "hooks.pre_release", d.PreReleaseHook); err != nil {
			return nil, err
		}
	}

	if err := d.Bundle.Clean(ctx); err != nil {
		return nil, err
	}

	files, err := d.prepareFiles(ctx, artifacts)
	if err != nil {
		return nil, err
	}

	report, err := d.Syncer.Sync(ctx, d.StagingDir, files, staging.SyncOptions{DeleteUnknown: true})
	if err != nil {
		return nil, err
	}
	logger.Info("synced staging bundle",
		"copied", len(report.Copied), "skipped", len(report.Skipped), "deleted", len(report.Deleted))

	if err := d.Bundle.Release(ctx); err != nil {
		return nil, err
	}

	if d.PostReleaseHook != "" {
		if err := d.Hooks.Run(ctx, "hooks.post_release", d.PostReleaseHook); err != nil {
			return nil, err
		}
	}

	return &Summary{Mode: ModeRelease, Tag: tag, Files: files, Report: report}, nil
}

// publishSnapshot stages a provisional version: no bundle clean/release,
// no deletes, identical files skipped.
func (d *Driver) publishSnapshot(ctx context.Context, artifacts []string) (*Summary, error) {
	d.logger().Info("publishing snapshot")

	files, err := d.prepareFiles(ctx, artifacts)
	if err != nil {
		return nil, err
	}

	report, err := d.Syncer.Sync(ctx, d.StagingDir, files, staging.SyncOptions{Soft: true})
	if err != nil {
		return nil, err
	}

	return &Summary{Mode: ModeSnapshot, Files: files, Report: report}, nil
}

// prepareFiles signs and checksums the artifacts, returning artifacts
// plus all produced sidecars.
func (d *Driver) prepareFiles(ctx context.Context, artifacts []string) ([]string, error) {
	sigs, err := d.Signer.Sign(ctx, artifacts)
	if err != nil {
		return nil, err
	}

	sums, err := d.Checksummer.Sum(ctx, artifacts)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(artifacts)+len(sigs)+len(sums))
	files = append(files, artifacts...)
	files = append(files, sigs...)
	files = append(files, sums...)
	return files, nil
}

// resolveArtifacts expands the configured globs relative to WorkDir.
func (d *Driver) resolveArtifacts() ([]string, error) {
	var artifacts []string
	for _, pattern := range d.Files {
		full := pattern
		if d.WorkDir != "" && !filepath.IsAbs(pattern) {
			full = filepath.Join(d.WorkDir, pattern)
		}
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("resolve artifact globs").
				WithResource(pattern).
				Wrap(err).
				BuildError()
		}
		artifacts = append(artifacts, matches...)
	}

	if len(artifacts) == 0 {
		return nil, issue.NewErrorContext().
			WithOperation("resolve artifact globs").
			WithSuggestion("Verify the 'files' globs against your build output").
			Wrap(errNoArtifacts).
			BuildError()
	}
	return artifacts, nil
}
