// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigCUE is the commented starter file written by `config init`.
const defaultConfigCUE = `// stagehand configuration

// Directory where the release bundle is assembled before publishing.
staging_dir: "target/staging"

// Globs selecting the artifacts to sign and publish.
// files: ["dist/*.jar", "dist/*.pom"]

gpg: {
	// gpg executable to invoke.
	command: "gpg"
	// Extra arguments passed to every signing invocation.
	// args: ["--local-user", "KEY_ID"]
}

// hooks: {
// 	pre_release:  "echo preparing release"
// 	post_release: "echo release done"
// }

// bundle: {
// 	clean_script:   "rm -rf target/staging"
// 	release_script: "./upload-bundle.sh"
// }

ui: {
	verbose: false
}
`

// CreateDefaultConfig writes the starter config file into dir (or the
// platform config directory when dir is empty). Refuses to overwrite an
// existing file.
func CreateDefaultConfig(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = ConfigDir()
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(path) {
		return "", fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.WriteFile(path, []byte(defaultConfigCUE), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
