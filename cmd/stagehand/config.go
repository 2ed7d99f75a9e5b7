// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"stagehand-cli/internal/config"
	"stagehand-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `stagehand config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stagehand configuration",
		Long: `Manage stagehand configuration.

Configuration is stored in:
  - Linux: ~/.config/stagehand/config.cue
  - macOS: ~/Library/Application Support/stagehand/config.cue
  - Windows: %APPDATA%\stagehand\config.cue

A config.cue in the current directory is also honored.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(*cobra.Command, []string) error {
			return showConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(*cobra.Command, []string) error {
			path, err := config.CreateDefaultConfig("")
			if err != nil {
				return err
			}
			fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(*cobra.Command, []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Printf("Config directory: %s\n", cfgDir)
			fmt.Printf("Config file: %s/config.cue\n", cfgDir)
			return nil
		},
	})

	return cfgCmd
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	path, err := config.ResolvedPath()
	if err == nil && path != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("staging_dir"), valueStyle.Render(cfg.StagingDir))

	fmt.Printf("%s:\n", keyStyle.Render("files"))
	if len(cfg.Files) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, glob := range cfg.Files {
			fmt.Printf("  - %s\n", valueStyle.Render(glob))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("gpg"))
	fmt.Printf("  command: %s\n", valueStyle.Render(cfg.GPG.Command))
	fmt.Printf("  args: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.GPG.Args)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("hooks"))
	printScript("pre_release", cfg.Hooks.PreRelease)
	printScript("post_release", cfg.Hooks.PostRelease)

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("bundle"))
	printScript("clean_script", cfg.Bundle.CleanScript)
	printScript("release_script", cfg.Bundle.ReleaseScript)

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func printScript(name, script string) {
	if script == "" {
		fmt.Printf("  %s: %s\n", name, SubtitleStyle.Render("(not set)"))
		return
	}
	fmt.Printf("  %s: %s\n", name, SuccessStyle.Render(script))
}
