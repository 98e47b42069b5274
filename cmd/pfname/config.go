// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/pfname/pfname/internal/config"
	"github.com/pfname/pfname/internal/issue"
	"github.com/pfname/pfname/pkg/fspath"
	"github.com/pfname/pfname/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `pfname config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pfname configuration",
		Long: `Manage pfname configuration.

Configuration is stored in:
  - Linux: ~/.config/pfname/config.cue
  - macOS: ~/Library/Application Support/pfname/config.cue
  - Windows: %APPDATA%\pfname\config.cue

A config.cue in the current directory is used when the file above does not
exist. Every setting can be overridden with an environment variable:
PFNAME_OUTPUT_FORMAT, PFNAME_LOG_LEVEL, PFNAME_UI_COLOR_SCHEME and
PFNAME_UI_VERBOSE.`,
		// A broken config file must not prevent 'config init --force' from repairing it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.resolveSettings(cmd.Context(), false)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.fail(types.ExitFailure, issue.ConfigLoadFailedId, err)
			}
			return showConfig(app, cfg)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.fail(types.ExitFailure, issue.ConfigLoadFailedId, err)
			}

			_, err = fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return err
		},
	})

	return cfgCmd
}

func showConfig(app *App, cfg *config.Config) error {
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	source, err := config.Source(app.loadOptions())
	switch {
	case err != nil:
		app.settings.logger.Warn("failed to resolve config file", "error", err)
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(unknown)"))
	case source == "":
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	default:
		// Relative sources such as ./config.cue are shown as absolute paths.
		if abs, absErr := fspath.Abs(types.FilesystemPath(source)); absErr == nil {
			source = abs.String()
		}
		fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("Config file"), source)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("output_format"), SuccessStyle.Render(cfg.OutputFormat.String()))
	fmt.Fprintf(out, "%s: %s\n", CmdStyle.Render("log_level"), SuccessStyle.Render(cfg.LogLevel.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", CmdStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", SuccessStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", SuccessStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App, force bool) error {
	cfgPath, created, err := config.CreateDefaultConfig(app.loadOptions(), force)
	if err != nil {
		return app.fail(types.ExitFailure, 0, issue.NewErrorContext().
			WithOperation("create configuration file").
			WithResource(cfgPath).
			WithSuggestion("Check that the directory is writable").
			WithSuggestion("Pass --config to write the file somewhere else").
			Wrap(err).
			BuildError())
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s (use --force to overwrite)\n",
			WarningStyle.Render("!"), cfgPath)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App) error {
	cfgPath, err := config.FilePath(app.loadOptions())
	if err != nil {
		return app.fail(types.ExitFailure, 0, err)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", fspath.Dir(types.FilesystemPath(cfgPath)))
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)

	return nil
}
