// SPDX-License-Identifier: MPL-2.0

package release

import (
	"errors"

	"stagehand-cli/internal/issue"
)

var (
	// errNoSecureContext means the build lacks restricted CI variables.
	errNoSecureContext = errors.New("no secure CI context: restricted variables are not available to this build")
	// errNotSnapshot means a branch build carries a release version.
	errNotSnapshot = errors.New("branch builds must use a -SNAPSHOT version")
	// errNoArtifacts means the configured globs matched nothing.
	errNoArtifacts = errors.New("no artifacts matched the configured globs")
)

// IsFatalMisuse reports whether the error describes a misconfigured
// invocation rather than a failed step, for exit-code selection.
func IsFatalMisuse(err error) bool {
	return errors.Is(err, errNoSecureContext) || errors.Is(err, errNotSnapshot)
}

// IssueFor maps a misuse error to its catalog entry, or 0 when the error
// has no dedicated card.
func IssueFor(err error) issue.Id {
	switch {
	case errors.Is(err, errNoSecureContext):
		return issue.InsecureContextId
	case errors.Is(err, errNotSnapshot):
		return issue.NotTagNotSnapshotId
	default:
		return 0
	}
}
