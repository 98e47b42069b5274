// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for pfname.
//
// This package implements the Cobra command hierarchy for the pfname CLI:
// deriving Publisher Ids, composing and parsing Package Family Names,
// batch processing of CUE identity files, and configuration management.
package cmd
