// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes platform-specific concerns such as
// runtime.GOOS name constants, so the rest of the codebase never
// compares against scattered string literals.
package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether the current platform is Windows.
func IsWindows() bool { return runtime.GOOS == Windows }
