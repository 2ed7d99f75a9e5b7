// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"stagehand-cli/internal/cienv"
	"stagehand-cli/internal/config"
	"stagehand-cli/internal/gpg"
	"stagehand-cli/internal/issue"
	"stagehand-cli/internal/pipecmd"

	"github.com/spf13/cobra"
)

var importKeyCmd = &cobra.Command{
	Use:   "import-key",
	Short: "Import the PGP signing key from PGP_SECRET",
	Long: `Import the PGP signing key from PGP_SECRET.

Decodes the base64 secret and imports it into the local gpg keyring.
On Azure Pipelines the secret is expected to be a base64-encoded zip
of the gnupg directory instead. Useful for debugging a pipeline's key
setup without running the full release flow.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		importer := &gpg.Importer{
			Command: cfg.GPG.Command,
			Sink:    pipecmd.LogSink(newLogger()),
		}
		if err := importer.ImportSecretKey(cmd.Context()); err != nil {
			id := issue.KeyImportFailedId
			if cienv.OS()(cienv.EnvPGPSecret) == "" {
				id = issue.PGPSecretMissingId
			}
			if rendered, rerr := issue.Get(id).Render("dark"); rerr == nil {
				fmt.Fprint(os.Stderr, rendered)
			}
			return err
		}

		fmt.Printf("%s Imported PGP key\n", SuccessStyle.Render("✓"))
		return nil
	},
}
