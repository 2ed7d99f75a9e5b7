// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"stagehand-cli/internal/cienv"

	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show how the current CI environment is classified",
	Long: `Show how the current CI environment is classified.

Reads the provider-specific variables (Travis CI, Azure Pipelines,
GitHub Actions, CircleCI, GitLab CI) and prints the derived facts the
release flow decides on: provider, secure context, tag push, release
tag, and current branch.`,
	RunE: func(*cobra.Command, []string) error {
		return showEnv(cienv.OS())
	},
}

func showEnv(env cienv.Env) error {
	fmt.Println(TitleStyle.Render("CI Environment"))
	fmt.Println()

	boolStyle := func(v bool) string {
		if v {
			return SuccessStyle.Render("true")
		}
		return SubtitleStyle.Render("false")
	}

	fmt.Printf("%s: %s\n", CmdStyle.Render("provider"), string(cienv.Identify(env)))
	fmt.Printf("%s: %s\n", CmdStyle.Render("secure"), boolStyle(cienv.IsSecure(env)))
	fmt.Printf("%s: %s\n", CmdStyle.Render("tag push"), boolStyle(cienv.IsTag(env)))
	fmt.Printf("%s: %s\n", CmdStyle.Render("release tag"), cienv.ReleaseTag(env))
	fmt.Printf("%s: %s\n", CmdStyle.Render("branch"), cienv.CurrentBranch(env))
	return nil
}
