// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfname/pfname/pkg/types"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// UserConfigRoot returns the directory under which applications keep their
// per-user configuration on goos:
//
//   - Windows: %APPDATA%, falling back to %USERPROFILE%\AppData\Roaming
//   - macOS: ~/Library/Application Support
//   - Linux and others: $XDG_CONFIG_HOME, falling back to ~/.config
func UserConfigRoot(goos string) (types.FilesystemPath, error) {
	switch goos {
	case Windows:
		if appData := os.Getenv("APPDATA"); appData != "" {
			return types.FilesystemPath(appData), nil
		}
		return types.FilesystemPath(filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")), nil
	case Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return types.FilesystemPath(filepath.Join(home, "Library", "Application Support")), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return types.FilesystemPath(xdg), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return types.FilesystemPath(filepath.Join(home, ".config")), nil
	}
}
