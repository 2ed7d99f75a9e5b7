// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("exit status 2")
	err := NewErrorContext().
		WithOperation("import pgp key").
		WithResource("PGP_SECRET").
		Wrap(cause).
		BuildError()

	want := "failed to import pgp key: PGP_SECRET: exit status 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestActionableErrorFormat(t *testing.T) {
	t.Parallel()

	inner := errors.New("bad base64")
	err := NewErrorContext().
		WithOperation("import pgp key").
		WithSuggestion("Re-export the key with base64 -w0").
		WithSuggestion("Check the secret is not truncated").
		Wrap(WrapWithOperation(inner, "decode secret")).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "• Re-export the key with base64 -w0") {
		t.Errorf("Format(false) = %q, missing first suggestion", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("Format(false) = %q, must not include the error chain", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) = %q, missing error chain", verbose)
	}
	if !strings.Contains(verbose, "bad base64") {
		t.Errorf("Format(true) = %q, missing root cause", verbose)
	}
}

func TestBuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestWrapWithOperationNilPassthrough(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
}
