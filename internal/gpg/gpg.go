// SPDX-License-Identifier: MPL-2.0

// Package gpg wraps the gpg executable for the release flow: importing
// the CI signing key from the PGP_SECRET variable and producing detached
// armored signatures for artifacts.
package gpg

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"stagehand-cli/internal/cienv"
	"stagehand-cli/internal/issue"
	"stagehand-cli/internal/pipecmd"
)

// DefaultCommand is the gpg executable probed on PATH.
const DefaultCommand = "gpg"

// zipName is the file the Azure key archive is decoded into.
const zipName = "gpg.zip"

// Importer imports the PGP signing key carried in the PGP_SECRET
// environment variable.
type Importer struct {
	// Env is the environment lookup; defaults to the process environment.
	Env cienv.Env
	// Command overrides the gpg executable; defaults to DefaultCommand.
	Command string
	// WorkDir is where the Azure key archive is decoded and unpacked;
	// defaults to the current directory.
	WorkDir string
	// Sink receives diagnostic lines from the spawned commands.
	Sink pipecmd.Sink
}

func (i *Importer) env() cienv.Env {
	if i.Env != nil {
		return i.Env
	}
	return cienv.OS()
}

func (i *Importer) command() string {
	if i.Command != "" {
		return i.Command
	}
	return DefaultCommand
}

// ImportSecretKey decodes PGP_SECRET and imports it into the local gpg
// keyring. On Azure Pipelines the secret is a base64-encoded zip of the
// gnupg directory; everywhere else it is raw key material piped through
// decode+import.
func (i *Importer) ImportSecretKey(ctx context.Context) error {
	env := i.env()

	secret := env(cienv.EnvPGPSecret)
	if secret == "" {
		return issue.NewErrorContext().
			WithOperation("import pgp key").
			WithResource(cienv.EnvPGPSecret).
			WithSuggestion("Export the key with 'gpg --export-secret-keys KEY_ID | base64'").
			WithSuggestion("Store the output as the PGP_SECRET secret variable of your pipeline").
			BuildError()
	}

	if cienv.IsAzure(env) {
		return i.importZippedKeyring(ctx, secret)
	}

	args := []string{"--import"}
	if cienv.IsGithub(env) {
		// The GitHub Actions runner has no tty; gpg must not prompt.
		args = append([]string{"--batch"}, args...)
	}

	p := pipecmd.Pipe{
		Op:     "import pgp key",
		First:  pipecmd.Command{Name: "base64", Args: []string{"--decode"}, Stdin: strings.NewReader(secret)},
		Second: pipecmd.New(i.command(), args...),
		Sink:   i.Sink,
	}
	if err := pipecmd.Run(ctx, p); err != nil {
		return issue.NewErrorContext().
			WithOperation("import pgp key").
			WithSuggestion("Re-export the key with 'gpg --export-secret-keys KEY_ID | base64 -w0'").
			WithSuggestion("Run with --verbose to see the gpg diagnostics").
			Wrap(err).
			BuildError()
	}
	return nil
}

// importZippedKeyring handles the Azure layout: decode the secret into
// gpg.zip and unpack it over the gnupg directory.
func (i *Importer) importZippedKeyring(ctx context.Context, secret string) error {
	decoded, err := pipecmd.Output(ctx, pipecmd.Pipe{
		Op:     "decode pgp key archive",
		First:  pipecmd.Command{Name: "base64", Args: []string{"--decode"}, Stdin: strings.NewReader(secret)},
		Second: pipecmd.New("cat"),
		Sink:   i.Sink,
	})
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("decode pgp key archive").
			WithResource(cienv.EnvPGPSecret).
			WithSuggestion("The Azure secret must be a base64-encoded zip of your .gnupg directory").
			Wrap(err).
			BuildError()
	}

	zipPath := filepath.Join(i.WorkDir, zipName)
	if err := os.WriteFile(zipPath, decoded, 0o600); err != nil {
		return issue.WrapWithOperation(err, "write pgp key archive")
	}

	unzip := exec.CommandContext(ctx, "unzip", "-o", zipName)
	unzip.Dir = i.WorkDir
	out, err := unzip.CombinedOutput()
	i.emitLines("unpack pgp key archive", out)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("unpack pgp key archive").
			WithResource(zipPath).
			Wrap(err).
			BuildError()
	}
	return nil
}

func (i *Importer) emitLines(op string, out []byte) {
	if i.Sink == nil {
		return
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		i.Sink(op, scanner.Text())
	}
}

// Version returns the first line of `gpg --version`, e.g.
// "gpg (GnuPG) 2.4.4". The command name defaults to DefaultCommand.
func Version(ctx context.Context, command string) (string, error) {
	if command == "" {
		command = DefaultCommand
	}
	out, err := exec.CommandContext(ctx, command, "--version").Output()
	if err != nil {
		return "", issue.WrapWithOperation(err, "probe gpg version")
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}
