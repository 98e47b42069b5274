// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	stderrors "errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// FormatError formats a CUE error with JSON path prefixes for clear error messages.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - identities.cue: identities[2].name: invalid value "" (out of bound !="")
//   - config.cue: ui.verbose: conflicting values "yes" and bool
//
// Identical lines, which CUE emits once per failed disjunct, are reported once.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		// Not a CUE error
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	seen := make(map[string]bool, len(cueErrors))
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path at the start of the message.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}

		line := msg
		if pathStr != "" {
			line = pathStr + ": " + msg
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatPath converts a CUE error path to JSON-path notation for user-facing messages.
// CUE reports paths as flat string slices (e.g., ["identities", "0", "name"]) where
// numeric elements are list indices; the result reads "identities[0].name".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i == 0:
			b.WriteString(part)
		case isListIndex(part):
			b.WriteString("[" + part + "]")
		default:
			b.WriteString("." + part)
		}
	}
	return b.String()
}

func isListIndex(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}

// ErrFileTooLarge is the sentinel error wrapped by FileTooLargeError.
var ErrFileTooLarge = stderrors.New("file too large")

// FileTooLargeError is returned when a document exceeds the allowed size.
// It wraps ErrFileTooLarge for errors.Is() compatibility.
type FileTooLargeError struct {
	Filename string
	Size     int64
	MaxSize  int64
}

// Error implements the error interface for FileTooLargeError.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.Filename, e.Size, e.MaxSize)
}

// Unwrap returns ErrFileTooLarge for errors.Is() compatibility.
func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// CheckFileSize returns a *FileTooLargeError if data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return &FileTooLargeError{Filename: filename, Size: int64(len(data)), MaxSize: maxSize}
	}
	return nil
}
