// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pfname/pfname/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the pfname command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pfname",
		Short: "Derive publisher ids and package family names",
		Long: TitleStyle.Render("pfname") + SubtitleStyle.Render(" - Derive publisher ids and package family names") + `

pfname computes the 13-character Publisher Id of a publisher name and
combines it with a package name into a Package Family Name, the way the
Windows package identity system does. Everything is computed offline.

` + SubtitleStyle.Render("Examples:") + `
  pfname id "CN=Contoso"                  Derive a publisher id
  pfname new Contoso.App "CN=Contoso"     Build a package family name
  pfname parse Contoso.App_8wekyb3d8bbwe  Split a package family name
  pfname batch identities.cue -o json     Derive every identity in a file
  pfname config show                      Show current configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.resolveSettings(cmd.Context(), true)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.flags.output, "output", "o", "", "output format: text, json, toml, yaml or cbor (default from config)")
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/pfname/config.cue)")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(newIDCommand(app))
	rootCmd.AddCommand(newNewCommand(app))
	rootCmd.AddCommand(newParseCommand(app))
	rootCmd.AddCommand(newCheckCommand(app))
	rootCmd.AddCommand(newCompareCommand(app))
	rootCmd.AddCommand(newBatchCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the root command and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(int(types.ExitFailure))
	}

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(handleError),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// handleError prints errors that reach fang. Commands render their own
// failures and return an ExitError, so only usage and flag errors are left.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
