// SPDX-License-Identifier: MPL-2.0

// Package staging assembles the release staging bundle: checksumming and
// syncing artifacts into the bundle directory, and driving the bundle
// clean/release scripts. The staging service itself stays an external
// collaborator.
package staging

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"stagehand-cli/internal/issue"
)

// FileChecksummer writes hex digest sidecar files next to each artifact,
// in the .sha256/.md5 layout staging repositories expect.
type FileChecksummer struct{}

// Sum writes <file>.sha256 and <file>.md5 for each input file and
// returns the sidecar paths. The first failing file aborts the batch.
func (FileChecksummer) Sum(ctx context.Context, files []string) ([]string, error) {
	sidecars := make([]string, 0, 2*len(files))
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, issue.WrapWithOperation(ctx.Err(), "checksum artifacts")
		default:
		}

		for _, d := range []struct {
			ext     string
			newHash func() hash.Hash
		}{
			{".sha256", sha256.New},
			{".md5", md5.New},
		} {
			sidecar, err := writeDigest(file, d.ext, d.newHash())
			if err != nil {
				return nil, issue.NewErrorContext().
					WithOperation("checksum artifact").
					WithResource(file).
					Wrap(err).
					BuildError()
			}
			sidecars = append(sidecars, sidecar)
		}
	}
	return sidecars, nil
}

func writeDigest(file, ext string, h hash.Hash) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	sidecar := file + ext
	digest := fmt.Sprintf("%s\n", hex.EncodeToString(h.Sum(nil)))
	if err := os.WriteFile(sidecar, []byte(digest), 0o644); err != nil {
		return "", err
	}
	return sidecar, nil
}
