// SPDX-License-Identifier: MPL-2.0

// Package hooks runs operator-configured shell snippets (pre/post release
// hooks and bundle scripts) with an embedded POSIX interpreter.
//
// Using mvdan/sh instead of the host shell keeps hook behavior identical
// across CI images, including ones with no /bin/sh.
package hooks

import (
	"context"
	"io"
	"os"
	"strings"

	"stagehand-cli/internal/issue"
	"stagehand-cli/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes hook scripts. The zero value runs in the current
// directory with the process environment and discarded output.
type Runner struct {
	// Dir is the working directory for hooks; defaults to the process cwd.
	Dir string
	// Env holds extra variables layered over the process environment.
	Env map[string]string
	// Stdout and Stderr receive hook output; nil discards.
	Stdout io.Writer
	Stderr io.Writer
}

// Validate parses the script without running it, so configuration errors
// surface before any release step has happened.
func Validate(name, script string) error {
	_, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("parse hook script").
			WithResource(name).
			WithSuggestion("Hooks run in a built-in POSIX interpreter; avoid bashisms").
			Wrap(err).
			BuildError()
	}
	return nil
}

// Run executes the script to completion. A non-zero exit status or an
// interpreter failure aborts with a descriptive error; the exit code is
// recoverable through ExitStatus.
func (r *Runner) Run(ctx context.Context, name, script string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("parse hook script").
			WithResource(name).
			Wrap(err).
			BuildError()
	}

	stdout := r.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	environ := os.Environ()
	for k, v := range r.Env {
		environ = append(environ, k+"="+v)
	}

	runner, err := interp.New(
		interp.Dir(r.Dir),
		interp.Env(expand.ListEnviron(environ...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return issue.WrapWithOperation(err, "create hook interpreter")
	}

	if err := runner.Run(ctx, prog); err != nil {
		return issue.NewErrorContext().
			WithOperation("run hook").
			WithResource(name).
			WithSuggestion("Run the hook snippet manually to reproduce").
			Wrap(err).
			BuildError()
	}
	return nil
}

// ExitStatus extracts the hook's exit code from a Run error. Returns 1
// for non-exit failures (parse errors, interpreter faults).
func ExitStatus(err error) types.ExitCode {
	if err == nil {
		return 0
	}
	if status, ok := interp.IsExitStatus(err); ok {
		return types.ExitCode(status)
	}
	return 1
}
