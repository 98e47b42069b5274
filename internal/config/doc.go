// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/pfname/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/pfname/config.cue on macOS, %APPDATA%\pfname\config.cue
// on Windows), falling back to ./config.cue. An explicit path given with --config is used
// exclusively. Environment variables prefixed with PFNAME_ override file values.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
