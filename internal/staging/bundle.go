// SPDX-License-Identifier: MPL-2.0

package staging

import (
	"context"

	"stagehand-cli/internal/hooks"
	"stagehand-cli/internal/issue"
)

// ScriptBundle drives the release-staging service through
// operator-configured scripts, keeping the service itself an external
// collaborator. Empty scripts are no-ops, so pipelines that only stage
// locally need no configuration.
type ScriptBundle struct {
	// Runner executes the scripts; required.
	Runner *hooks.Runner
	// CleanScript empties the remote staging bundle before a release.
	CleanScript string
	// ReleaseScript closes and promotes the staged bundle.
	ReleaseScript string
}

// Clean runs the configured clean script.
func (b *ScriptBundle) Clean(ctx context.Context) error {
	if b.CleanScript == "" {
		return nil
	}
	return b.Runner.Run(ctx, "bundle.clean_script", b.CleanScript)
}

// Release runs the configured release script.
func (b *ScriptBundle) Release(ctx context.Context) error {
	if b.ReleaseScript == "" {
		return nil
	}
	if err := b.Runner.Run(ctx, "bundle.release_script", b.ReleaseScript); err != nil {
		return issue.NewErrorContext().
			WithOperation("release staging bundle").
			WithSuggestion("The staged artifacts are still in the staging dir; fix the script and re-run").
			Wrap(err).
			BuildError()
	}
	return nil
}
