// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types for stagehand.
//
// ActionableError carries the failed operation, the resource involved,
// and fix suggestions; the issue catalog maps well-known failure classes
// (no secure CI context, missing PGP secret, non-snapshot branch push)
// to rendered markdown guidance.
package issue
