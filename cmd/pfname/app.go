// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pfname/pfname/internal/config"
	"github.com/pfname/pfname/internal/issue"
	"github.com/pfname/pfname/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and read
	// configuration, output settings and the logger through it.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer

		flags    rootFlagValues
		settings settings
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply their own
	// config provider and capture output through Stdout and Stderr.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// rootFlagValues holds the persistent flags shared by every command.
	rootFlagValues struct {
		output     string
		verbose    bool
		configPath string
	}

	// settings is the effective per-invocation state resolved from flags and
	// configuration before a command runs.
	settings struct {
		cfg     *config.Config
		format  config.OutputFormat
		verbose bool
		logger  *log.Logger
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	defaults := config.DefaultConfig()
	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		settings: settings{
			cfg:    defaults,
			format: defaults.OutputFormat,
			logger: newLogger(deps.Stderr, defaults.LogLevel, false),
		},
	}, nil
}

// loadOptions returns the config loading options implied by --config.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.flags.configPath)}
}

// resolveSettings loads configuration and merges it with the persistent flags.
//
// With strict set, any config error aborts the command. Otherwise the error
// is logged as a warning and defaults apply.
func (a *App) resolveSettings(ctx context.Context, strict bool) error {
	a.settings.verbose = a.flags.verbose

	// A malformed --config is an error even where a missing config is not.
	opts := a.loadOptions()
	if opts.ConfigFilePath != "" {
		if err := opts.ConfigFilePath.Validate(); err != nil {
			return a.fail(types.ExitFailure, issue.ConfigLoadFailedId, issue.NewErrorContext().
				WithOperation("select config file").
				WithSuggestion("Pass the path of an existing config.cue to --config").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError())
		}
	}

	cfg, err := a.Config.Load(ctx, opts)
	if err != nil {
		if strict {
			return a.fail(types.ExitFailure, issue.ConfigLoadFailedId, err)
		}
		a.settings.logger.Warn("failed to load config, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}

	format := cfg.OutputFormat
	if a.flags.output != "" {
		format = config.OutputFormat(a.flags.output)
		if vErr := format.Validate(); vErr != nil {
			return a.fail(types.ExitFailure, issue.InvalidOutputFormatId, issue.NewErrorContext().
				WithOperation("select output format").
				WithResource(a.flags.output).
				WithSuggestion("Use one of: text, json, toml, yaml, cbor").
				WithIssue(issue.InvalidOutputFormatId).
				Wrap(vErr).
				BuildError())
		}
	}

	verbose := a.flags.verbose || cfg.UI.Verbose
	a.settings = settings{
		cfg:     cfg,
		format:  format,
		verbose: verbose,
		logger:  newLogger(a.stderr, cfg.LogLevel, verbose),
	}
	return nil
}

// fail renders err to stderr and returns the ExitError the command should
// return. In verbose mode the catalog entry for issueID (or the one attached
// to an ActionableError) is rendered after the message.
func (a *App) fail(code types.ExitCode, issueID issue.Id, err error) error {
	_, _ = fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.settings.verbose))

	if a.settings.verbose {
		var ae *issue.ActionableError
		if errors.As(err, &ae) && ae.IssueId != 0 {
			issueID = ae.IssueId
		}
		a.renderIssue(issueID)
	}

	return &ExitError{Code: code, Err: err}
}

// renderIssue writes the catalog entry for id to stderr using the configured
// color scheme. Unknown ids are ignored.
func (a *App) renderIssue(id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}

	rendered, err := entry.Render(string(a.settings.cfg.UI.ColorScheme))
	if err != nil {
		a.settings.logger.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	_, _ = fmt.Fprint(a.stderr, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
