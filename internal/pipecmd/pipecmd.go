// SPDX-License-Identifier: MPL-2.0

// Package pipecmd runs a chain of two external commands where the first
// command's standard output is fed as the second command's standard input.
//
// A naive shell pipe masks first-stage failures behind the second stage's
// (usually unrelated) broken-pipe error. This runner executes the first
// command to completion, buffering its output in memory, and only then
// starts the second command. When the first command fails, the error leads
// with the most recent line the command printed to stderr instead of a
// generic "exit status N".
//
// The in-memory handoff is a deliberate simplicity tradeoff: inputs here
// (signing keys, small file lists) are small.
package pipecmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/charmbracelet/log"
)

type (
	// Command is an explicit argument-vector command specification.
	// Commands are never joined through a shell, so arguments need no
	// quoting or escaping.
	Command struct {
		// Name is the executable path or name (resolved via PATH).
		Name string
		// Args is the argument list, excluding the executable name.
		Args []string
		// Stdin optionally supplies the command's standard input.
		// Only honored for the first stage of a Pipe; the second stage's
		// stdin is always the first stage's captured output.
		Stdin io.Reader
	}

	// Sink receives diagnostic output lines for operator visibility.
	// It is not part of the success/failure contract.
	Sink func(op, line string)

	// Pipe chains two commands: First's stdout becomes Second's stdin.
	Pipe struct {
		// Op names the operation for diagnostic labeling (e.g. "import pgp key").
		Op string
		// First runs to completion before Second starts.
		First Command
		// Second consumes First's captured output.
		Second Command
		// Sink, when non-nil, receives every diagnostic line the pipe's
		// commands print, labeled with Op.
		Sink Sink
	}

	// FirstStageError reports a first-stage failure, preferring the
	// captured stderr line as the primary diagnostic message.
	FirstStageError struct {
		// Command is the failed executable's name.
		Command string
		// Diagnostic is the most recent stderr line the command printed.
		// Never empty: with no captured line the underlying error is
		// returned unwrapped instead of a FirstStageError.
		Diagnostic string
		// Cause is the underlying process failure.
		Cause error
	}
)

// New builds a Command from an executable name and argument vector.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Error implements the error interface, leading with the diagnostic.
func (e *FirstStageError) Error() string {
	return fmt.Sprintf("%s (%s: %s)", e.Diagnostic, e.Command, e.Cause)
}

// Unwrap returns the underlying process failure for errors.Is/As.
func (e *FirstStageError) Unwrap() error { return e.Cause }

// LogSink adapts a charmbracelet logger into a diagnostic Sink.
func LogSink(logger *log.Logger) Sink {
	return func(op, line string) {
		logger.Debug(line, "op", op)
	}
}

// Run executes the pipe, discarding the second command's output (any
// diagnostic lines still reach the sink). The result is the second
// command's outcome; first-stage failures surface as FirstStageError.
func Run(ctx context.Context, p Pipe) error {
	_, err := run(ctx, p, false)
	return err
}

// Output executes the pipe and returns the second command's standard
// output. Error semantics match Run.
func Output(ctx context.Context, p Pipe) ([]byte, error) {
	return run(ctx, p, true)
}

// run owns the per-invocation error record; no state is shared across
// invocations.
func run(ctx context.Context, p Pipe, capture bool) ([]byte, error) {
	handoff, err := runFirst(ctx, p)
	if err != nil {
		return nil, err
	}
	return runSecond(ctx, p, handoff, capture)
}

// runFirst runs the first command to completion, buffering stdout for the
// handoff and tailing stderr for the error record.
func runFirst(ctx context.Context, p Pipe) ([]byte, error) {
	cmd := exec.CommandContext(ctx, p.First.Name, p.First.Args...)
	cmd.Stdin = p.First.Stdin

	var handoff bytes.Buffer
	cmd.Stdout = &handoff

	tail := newTailWriter(p.Op, p.Sink)
	cmd.Stderr = tail

	err := cmd.Run()
	tail.flush()
	if err != nil {
		if diag := tail.last(); diag != "" {
			return nil, &FirstStageError{Command: p.First.Name, Diagnostic: diag, Cause: err}
		}
		// No stderr output before failing: fall back cleanly to the
		// underlying process error.
		return nil, err
	}

	return handoff.Bytes(), nil
}

func runSecond(ctx context.Context, p Pipe, handoff []byte, capture bool) ([]byte, error) {
	cmd := exec.CommandContext(ctx, p.Second.Name, p.Second.Args...)
	cmd.Stdin = bytes.NewReader(handoff)

	stderrTail := newTailWriter(p.Op, p.Sink)
	cmd.Stderr = stderrTail

	var out []byte
	if capture {
		var buf bytes.Buffer
		cmd.Stdout = &buf
		err := cmd.Run()
		stderrTail.flush()
		out = buf.Bytes()
		if err != nil {
			return out, err
		}
		return out, nil
	}

	stdoutTail := newTailWriter(p.Op, p.Sink)
	cmd.Stdout = stdoutTail
	err := cmd.Run()
	stdoutTail.flush()
	stderrTail.flush()
	return nil, err
}
