// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared by the command layer and
// the configuration loader. Each type carries its own validation and a typed
// error that wraps a package sentinel for errors.Is checks.
//
// This package is a leaf dependency: it imports only the standard library.
package types
