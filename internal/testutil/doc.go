// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail the test
// on setup errors instead of returning them.
//
// Environment helpers (MustSetenv, MustUnsetenv, SetHomeDir) and MustChdir
// return a cleanup function that restores the previous state.
package testutil
