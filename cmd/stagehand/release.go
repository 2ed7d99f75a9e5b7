// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"stagehand-cli/internal/cienv"
	"stagehand-cli/internal/config"
	"stagehand-cli/internal/gpg"
	"stagehand-cli/internal/hooks"
	"stagehand-cli/internal/issue"
	"stagehand-cli/internal/pipecmd"
	"stagehand-cli/internal/release"
	"stagehand-cli/internal/staging"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// buildVersion is the version the build produced, from --build-version.
	buildVersion string
	// releaseFiles overrides the configured artifact globs.
	releaseFiles []string
	// stagingDirFlag overrides the configured staging directory.
	stagingDirFlag string
	// dryRun reports the planned mode without touching anything.
	dryRun bool

	releaseCmd = &cobra.Command{
		Use:   "release",
		Short: "Sign, checksum, and publish the build artifacts",
		Long: `Sign, checksum, and publish the build artifacts.

The release flow gates on the secure CI context, imports the PGP key
from PGP_SECRET, then decides from the environment:

  tag push                     full release: hooks, bundle clean, sign,
                               checksum, hard sync, bundle release
  branch + -SNAPSHOT version   soft staging: sign, checksum, sync
  branch + release version     refused`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRelease(cmd.Context())
		},
	}
)

func init() {
	releaseCmd.Flags().StringVar(&buildVersion, "build-version", "", "version the build produced (required)")
	releaseCmd.Flags().StringSliceVar(&releaseFiles, "files", nil, "artifact globs (overrides config)")
	releaseCmd.Flags().StringVar(&stagingDirFlag, "staging-dir", "", "staging bundle directory (overrides config)")
	releaseCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the planned mode without publishing")
	_ = releaseCmd.MarkFlagRequired("build-version")
}

// newLogger builds the CLI logger; verbose mode lifts it to debug.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "stagehand",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runRelease(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	files := cfg.Files
	if len(releaseFiles) > 0 {
		files = releaseFiles
	}
	stagingDir := cfg.StagingDir
	if stagingDirFlag != "" {
		stagingDir = stagingDirFlag
	}

	env := cienv.OS()
	if dryRun {
		printPlan(env, buildVersion, files, stagingDir)
		return nil
	}

	logger := newLogger()
	sink := pipecmd.LogSink(logger)

	tag := cienv.StripRefPrefix(cienv.ReleaseTag(env))
	runner := &hooks.Runner{
		Env: map[string]string{
			"RELEASE_TAG":   tag,
			"BUILD_VERSION": buildVersion,
			"STAGING_DIR":   stagingDir,
		},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	driver := &release.Driver{
		Env:             env,
		Logger:          logger,
		StagingDir:      stagingDir,
		Files:           files,
		PreReleaseHook:  cfg.Hooks.PreRelease,
		PostReleaseHook: cfg.Hooks.PostRelease,
		Importer:        &gpg.Importer{Command: cfg.GPG.Command, Sink: sink},
		Signer:          &gpg.Signer{Command: cfg.GPG.Command, ExtraArgs: cfg.GPG.Args, Sink: sink},
		Checksummer:     staging.FileChecksummer{},
		Syncer:          staging.DirSyncer{},
		Bundle: &staging.ScriptBundle{
			Runner:        runner,
			CleanScript:   cfg.Bundle.CleanScript,
			ReleaseScript: cfg.Bundle.ReleaseScript,
		},
		Hooks: runner,
		VersionProbe: func(ctx context.Context) (string, error) {
			return gpg.Version(ctx, cfg.GPG.Command)
		},
	}

	summary, err := driver.Run(ctx, buildVersion)
	if err != nil {
		if release.IsFatalMisuse(err) {
			if id := release.IssueFor(err); id != 0 {
				if rendered, rerr := issue.Get(id).Render("dark"); rerr == nil {
					fmt.Fprint(os.Stderr, rendered)
				}
			}
			return &ExitError{Code: 2, Err: err}
		}
		return err
	}

	switch summary.Mode {
	case release.ModeRelease:
		fmt.Printf("%s Released %s (%d files staged)\n",
			SuccessStyle.Render("✓"), CmdStyle.Render(summary.Tag), len(summary.Files))
	case release.ModeSnapshot:
		fmt.Printf("%s Staged snapshot %s (%d files)\n",
			SuccessStyle.Render("✓"), CmdStyle.Render(buildVersion), len(summary.Files))
	}
	return nil
}

// printPlan reports the decision the release flow would take.
func printPlan(env cienv.Env, version string, files []string, stagingDir string) {
	fmt.Println(TitleStyle.Render("Release Plan"))
	fmt.Println()
	fmt.Printf("%s: %s\n", CmdStyle.Render("provider"), cienv.Identify(env))
	fmt.Printf("%s: %v\n", CmdStyle.Render("secure"), cienv.IsSecure(env))
	fmt.Printf("%s: %s\n", CmdStyle.Render("staging_dir"), stagingDir)
	fmt.Printf("%s: %v\n", CmdStyle.Render("files"), files)

	switch {
	case !cienv.IsSecure(env):
		fmt.Printf("%s: %s\n", CmdStyle.Render("mode"), ErrorStyle.Render("refused (no secure context)"))
	case cienv.IsTag(env):
		tag := cienv.StripRefPrefix(cienv.ReleaseTag(env))
		fmt.Printf("%s: release tag %s\n", CmdStyle.Render("mode"), tag)
	case cienv.IsSnapshotVersion(version):
		fmt.Printf("%s: snapshot (soft sync)\n", CmdStyle.Render("mode"))
	default:
		fmt.Printf("%s: %s\n", CmdStyle.Render("mode"),
			ErrorStyle.Render("refused (branch build with release version "+version+")"))
	}
}
