// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/pfname/pfname/internal/config"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger writing to w. Verbose mode lowers the
// threshold to debug regardless of the configured level.
func newLogger(w io.Writer, level config.LogLevel, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
	})

	lvl, err := log.ParseLevel(string(level))
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)

	return logger
}
