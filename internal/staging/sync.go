// SPDX-License-Identifier: MPL-2.0

package staging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"stagehand-cli/internal/issue"
)

type (
	// SyncOptions controls how files are reconciled into the bundle dir.
	SyncOptions struct {
		// DeleteUnknown removes bundle files that are not part of the
		// synced set. Used for tag releases so stale artifacts from a
		// previous run cannot leak into the bundle.
		DeleteUnknown bool
		// Soft skips files that already exist with identical content and
		// never deletes, for incremental snapshot publishing.
		Soft bool
	}

	// Report summarizes a sync run.
	Report struct {
		Copied  []string
		Skipped []string
		Deleted []string
	}

	// DirSyncer reconciles a flat set of files into the staging bundle
	// directory. Content comparison is whole-file; artifacts here are
	// small (jars, poms, signatures, checksums).
	DirSyncer struct{}
)

// Sync copies files into targetDir per opts and returns what changed.
func (DirSyncer) Sync(ctx context.Context, targetDir string, files []string, opts SyncOptions) (*Report, error) {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("create staging dir").
			WithResource(targetDir).
			WithSuggestion("Check staging_dir in your configuration").
			Wrap(err).
			BuildError()
	}

	report := &Report{}
	known := make(map[string]bool, len(files))

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, issue.WrapWithOperation(ctx.Err(), "sync staging bundle")
		default:
		}

		name := filepath.Base(file)
		known[name] = true
		dst := filepath.Join(targetDir, name)

		same, err := sameContent(file, dst)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("sync staging bundle").
				WithResource(file).
				Wrap(err).
				BuildError()
		}
		if same {
			report.Skipped = append(report.Skipped, name)
			continue
		}

		if err := copyFile(file, dst); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("sync staging bundle").
				WithResource(file).
				WithSuggestion("Check the staging dir is writable").
				Wrap(err).
				BuildError()
		}
		report.Copied = append(report.Copied, name)
	}

	if opts.DeleteUnknown && !opts.Soft {
		deleted, err := deleteUnknown(targetDir, known)
		if err != nil {
			return nil, err
		}
		report.Deleted = deleted
	}

	return report, nil
}

// sameContent reports whether dst exists with byte-identical content.
func sameContent(src, dst string) (bool, error) {
	dstBytes, err := os.ReadFile(dst)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	srcBytes, err := os.ReadFile(src)
	if err != nil {
		return false, err
	}
	return bytes.Equal(srcBytes, dstBytes), nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func deleteUnknown(targetDir string, known map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(targetDir)
	if err != nil {
		return nil, issue.WrapWithOperation(err, "scan staging dir")
	}

	var deleted []string
	for _, entry := range entries {
		if entry.IsDir() || known[entry.Name()] {
			continue
		}
		if err := os.Remove(filepath.Join(targetDir, entry.Name())); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("delete stale bundle file").
				WithResource(entry.Name()).
				Wrap(err).
				BuildError()
		}
		deleted = append(deleted, entry.Name())
	}
	return deleted, nil
}
