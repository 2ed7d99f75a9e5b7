// SPDX-License-Identifier: MPL-2.0

package staging

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"stagehand-cli/internal/hooks"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestChecksummerWritesSidecars(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	artifact := writeFile(t, dir, "app.jar", "jar bytes")

	sidecars, err := FileChecksummer{}.Sum(context.Background(), []string{artifact})
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if len(sidecars) != 2 {
		t.Fatalf("Sum() produced %d sidecars, want 2", len(sidecars))
	}

	sum := sha256.Sum256([]byte("jar bytes"))
	want := hex.EncodeToString(sum[:])
	got, err := os.ReadFile(artifact + ".sha256")
	if err != nil {
		t.Fatalf("missing sha256 sidecar: %v", err)
	}
	if strings.TrimSpace(string(got)) != want {
		t.Errorf("sha256 sidecar = %q, want %q", got, want)
	}
	if _, err := os.Stat(artifact + ".md5"); err != nil {
		t.Errorf("missing md5 sidecar: %v", err)
	}
}

func TestChecksummerMissingFile(t *testing.T) {
	t.Parallel()

	_, err := FileChecksummer{}.Sum(context.Background(), []string{filepath.Join(t.TempDir(), "absent.jar")})
	if err == nil {
		t.Fatal("Sum() error = nil, want failure for missing file")
	}
}

func TestSyncCopiesAndReports(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	target := filepath.Join(t.TempDir(), "bundle")
	a := writeFile(t, src, "a.jar", "content a")
	b := writeFile(t, src, "b.pom", "content b")

	report, err := DirSyncer{}.Sync(context.Background(), target, []string{a, b}, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if len(report.Copied) != 2 {
		t.Errorf("Copied = %v, want 2 entries", report.Copied)
	}

	got, err := os.ReadFile(filepath.Join(target, "a.jar"))
	if err != nil || string(got) != "content a" {
		t.Errorf("synced a.jar = %q, %v", got, err)
	}
}

func TestSyncSkipsIdenticalContent(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	target := t.TempDir()
	a := writeFile(t, src, "a.jar", "same")
	writeFile(t, target, "a.jar", "same")

	report, err := DirSyncer{}.Sync(context.Background(), target, []string{a}, SyncOptions{})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if !slices.Contains(report.Skipped, "a.jar") {
		t.Errorf("Skipped = %v, want a.jar skipped", report.Skipped)
	}
	if len(report.Copied) != 0 {
		t.Errorf("Copied = %v, want none", report.Copied)
	}
}

func TestSyncDeleteUnknown(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	target := t.TempDir()
	a := writeFile(t, src, "a.jar", "fresh")
	writeFile(t, target, "stale.jar", "old artifact")

	report, err := DirSyncer{}.Sync(context.Background(), target, []string{a}, SyncOptions{DeleteUnknown: true})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if !slices.Contains(report.Deleted, "stale.jar") {
		t.Errorf("Deleted = %v, want stale.jar", report.Deleted)
	}
	if _, err := os.Stat(filepath.Join(target, "stale.jar")); !os.IsNotExist(err) {
		t.Error("stale.jar still present after delete-unknown sync")
	}
}

func TestSyncSoftNeverDeletes(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	target := t.TempDir()
	a := writeFile(t, src, "a.jar", "fresh")
	writeFile(t, target, "stale.jar", "old artifact")

	report, err := DirSyncer{}.Sync(context.Background(), target, []string{a},
		SyncOptions{DeleteUnknown: true, Soft: true})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if len(report.Deleted) != 0 {
		t.Errorf("Deleted = %v, want none in soft mode", report.Deleted)
	}
	if _, err := os.Stat(filepath.Join(target, "stale.jar")); err != nil {
		t.Errorf("stale.jar removed in soft mode: %v", err)
	}
}

func TestScriptBundleRunsScripts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bundle := &ScriptBundle{
		Runner:        &hooks.Runner{Dir: dir},
		CleanScript:   `echo cleaned > clean.txt`,
		ReleaseScript: `echo released > release.txt`,
	}

	ctx := context.Background()
	if err := bundle.Clean(ctx); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if err := bundle.Release(ctx); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	for _, name := range []string{"clean.txt", "release.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("script output %s missing: %v", name, err)
		}
	}
}

func TestScriptBundleEmptyScriptsAreNoOps(t *testing.T) {
	t.Parallel()

	bundle := &ScriptBundle{Runner: &hooks.Runner{}}
	if err := bundle.Clean(context.Background()); err != nil {
		t.Errorf("Clean() with no script = %v, want nil", err)
	}
	if err := bundle.Release(context.Background()); err != nil {
		t.Errorf("Release() with no script = %v, want nil", err)
	}
}

func TestScriptBundleReleaseFailure(t *testing.T) {
	t.Parallel()

	bundle := &ScriptBundle{
		Runner:        &hooks.Runner{Dir: t.TempDir()},
		ReleaseScript: `exit 3`,
	}
	err := bundle.Release(context.Background())
	if err == nil {
		t.Fatal("Release() error = nil, want failure")
	}
	if !strings.Contains(err.Error(), "release staging bundle") {
		t.Errorf("error %q missing operation context", err.Error())
	}
}
