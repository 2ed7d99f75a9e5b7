// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"stagehand-cli/internal/scm"

	"github.com/spf13/cobra"
)

var scmCmd = &cobra.Command{
	Use:   "scm",
	Short: "Show SCM metadata inferred from the git remote",
	Long: `Show SCM metadata inferred from the git remote.

Probes the origin remote of the current repository and, for GitHub
remotes, prints the browse URL and the connection strings publishing
metadata embeds. Non-GitHub remotes yield no metadata; that is not an
error.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := scm.Infer(cmd.Context(), "")
		if info == nil {
			fmt.Println(SubtitleStyle.Render("(no GitHub remote recognized)"))
			return nil
		}

		fmt.Printf("%s: %s\n", CmdStyle.Render("browse"), info.BrowseURL())
		fmt.Printf("%s: %s\n", CmdStyle.Render("connection"), info.Connection())
		fmt.Printf("%s: %s\n", CmdStyle.Render("developer connection"), info.DeveloperConnection())
		return nil
	},
}
