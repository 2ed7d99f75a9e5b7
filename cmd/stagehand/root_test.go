// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"stagehand-cli/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	t.Run("actionable error uses Format", func(t *testing.T) {
		t.Parallel()

		err := issue.NewErrorContext().
			WithOperation("import pgp key").
			WithSuggestion("Check PGP_SECRET").
			Wrap(errors.New("decode failed")).
			BuildError()

		got := formatErrorForDisplay(err, false)
		if !strings.Contains(got, "import pgp key") {
			t.Errorf("formatErrorForDisplay() = %q, missing operation", got)
		}
		if !strings.Contains(got, "Check PGP_SECRET") {
			t.Errorf("formatErrorForDisplay() = %q, missing suggestion", got)
		}
	})

	t.Run("plain error passes through", func(t *testing.T) {
		t.Parallel()

		got := formatErrorForDisplay(errors.New("boom"), false)
		if got != "boom" {
			t.Errorf("formatErrorForDisplay() = %q, want %q", got, "boom")
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	err := &ExitError{Code: 2, Err: errors.New("refused")}
	if err.Error() != "refused" {
		t.Errorf("Error() = %q, want %q", err.Error(), "refused")
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 3")
	}

	var target *ExitError
	wrapped := &ExitError{Code: 2, Err: errors.New("inner")}
	if !errors.As(error(wrapped), &target) {
		t.Error("errors.As failed to match *ExitError")
	}
}
