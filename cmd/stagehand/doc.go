// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for stagehand.
//
// This package implements the Cobra command hierarchy for the stagehand
// CLI: the root command, the release flow, the environment and SCM
// inspection commands, key import, and configuration utilities.
package cmd
