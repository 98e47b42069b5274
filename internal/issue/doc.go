// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the offending value or file,
// and remediation hints. The issue catalog holds longer Markdown guidance per
// failure kind, rendered for the terminal with glamour when --verbose is set.
package issue
