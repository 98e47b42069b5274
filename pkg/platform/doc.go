// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes runtime.GOOS names and the per-OS location of user
// configuration so callers do not scatter platform switches.
package platform
