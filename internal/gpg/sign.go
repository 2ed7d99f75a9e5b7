// SPDX-License-Identifier: MPL-2.0

package gpg

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"

	"stagehand-cli/internal/issue"
	"stagehand-cli/internal/pipecmd"
)

// Signer produces detached armored signatures with the gpg executable.
// Signing internals (key selection, hashing) belong to gpg itself.
type Signer struct {
	// Command overrides the gpg executable; defaults to DefaultCommand.
	Command string
	// ExtraArgs are appended before the file arguments (e.g. --local-user).
	ExtraArgs []string
	// Sink receives gpg's diagnostic lines.
	Sink pipecmd.Sink
}

// Sign signs each file in place, producing a .asc sibling per file, and
// returns the signature paths. The first failing file aborts the batch.
func (s *Signer) Sign(ctx context.Context, files []string) ([]string, error) {
	command := s.Command
	if command == "" {
		command = DefaultCommand
	}

	sigs := make([]string, 0, len(files))
	for _, file := range files {
		sig := file + ".asc"
		args := []string{"--batch", "--yes", "--armor", "--detach-sign"}
		args = append(args, s.ExtraArgs...)
		args = append(args, "--output", sig, file)

		cmd := exec.CommandContext(ctx, command, args...)
		out, err := cmd.CombinedOutput()
		s.emit("sign artifact", out)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("sign artifact").
				WithResource(file).
				WithSuggestion("Check the signing key was imported (stagehand import-key)").
				Wrap(err).
				BuildError()
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func (s *Signer) emit(op string, out []byte) {
	if s.Sink == nil {
		return
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		s.Sink(op, scanner.Text())
	}
}
