// SPDX-License-Identifier: MPL-2.0

package hooks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExecutesScriptInDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := &Runner{Dir: dir}

	err := r.Run(context.Background(), "pre_release", `echo staged > marker.txt`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "marker.txt"))
	if err != nil {
		t.Fatalf("hook did not write in Dir: %v", err)
	}
	if strings.TrimSpace(string(got)) != "staged" {
		t.Errorf("marker content = %q, want %q", got, "staged")
	}
}

func TestRunExtraEnvIsVisible(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &Runner{
		Dir:    t.TempDir(),
		Env:    map[string]string{"RELEASE_TAG": "v1.2.3"},
		Stdout: &out,
	}

	if err := r.Run(context.Background(), "hook", `printf '%s' "$RELEASE_TAG"`); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != "v1.2.3" {
		t.Errorf("hook output = %q, want %q", out.String(), "v1.2.3")
	}
}

func TestRunNonZeroExitSurfacesStatus(t *testing.T) {
	t.Parallel()

	r := &Runner{Dir: t.TempDir()}
	err := r.Run(context.Background(), "failing", `exit 4`)
	if err == nil {
		t.Fatal("Run() error = nil, want exit failure")
	}
	if got := ExitStatus(err); got != 4 {
		t.Errorf("ExitStatus() = %d, want 4", got)
	}
}

func TestExitStatusDefaults(t *testing.T) {
	t.Parallel()

	if got := ExitStatus(nil); got != 0 {
		t.Errorf("ExitStatus(nil) = %d, want 0", got)
	}

	r := &Runner{Dir: t.TempDir()}
	err := r.Run(context.Background(), "broken", "echo \"unclosed")
	if err == nil {
		t.Fatal("Run() error = nil, want parse failure")
	}
	if got := ExitStatus(err); got != 1 {
		t.Errorf("ExitStatus(parse error) = %d, want 1", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := Validate("ok", `echo fine`); err != nil {
		t.Errorf("Validate(valid) = %v, want nil", err)
	}
	if err := Validate("broken", "echo \"unclosed"); err == nil {
		t.Error("Validate(invalid) = nil, want parse error")
	}
}
