// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a path to a config or batch file, absolute or relative.
	// A valid path has visible characters and no NUL bytes.
	FilesystemPath string

	// InvalidFilesystemPathError is returned when a FilesystemPath cannot name
	// a file. Reason says why.
	InvalidFilesystemPathError struct {
		Value  FilesystemPath
		Reason string
	}
)

// String returns the string representation of the FilesystemPath.
func (p FilesystemPath) String() string { return string(p) }

// Validate returns an *InvalidFilesystemPathError if the path is blank or
// contains a NUL byte.
func (p FilesystemPath) Validate() error {
	switch {
	case strings.TrimSpace(string(p)) == "":
		return &InvalidFilesystemPathError{Value: p, Reason: "must not be blank"}
	case strings.IndexByte(string(p), 0) >= 0:
		return &InvalidFilesystemPathError{Value: p, Reason: "must not contain NUL bytes"}
	}
	return nil
}

// Error implements the error interface for InvalidFilesystemPathError.
func (e *InvalidFilesystemPathError) Error() string {
	return fmt.Sprintf("invalid filesystem path %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }
