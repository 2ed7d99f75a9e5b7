// SPDX-License-Identifier: MPL-2.0

// Package config handles stagehand configuration using Viper with CUE as
// the file format.
//
// Configuration is loaded from ~/.config/stagehand/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/stagehand/config.cue
// on macOS, %APPDATA%\stagehand\config.cue on Windows), with a ./config.cue
// next to the build as a fallback. Files are validated against an embedded
// CUE schema (config_schema.cue) before being merged into Viper, so schema
// violations produce positioned error messages instead of silent defaults.
package config
