// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pfname/pfname/internal/issue"
	"github.com/pfname/pfname/pkg/cueutil"
	"github.com/pfname/pfname/pkg/fspath"
	"github.com/pfname/pfname/pkg/platform"
	"github.com/pfname/pfname/pkg/types"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "pfname"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variables that override config keys,
	// e.g. PFNAME_OUTPUT_FORMAT or PFNAME_UI_VERBOSE.
	EnvPrefix = "PFNAME"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the pfname configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	root, err := platform.UserConfigRoot(runtime.GOOS)
	if err != nil {
		return "", err
	}

	return fspath.JoinStr(root, AppName).String(), nil
}

// FilePath returns the config file path that applies to opts: the explicit
// file when set, otherwise config.cue inside the (possibly overridden) config
// directory. The file is not required to exist.
func FilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath.String(), nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	return fspath.JoinStr(types.FilesystemPath(cfgDir), ConfigFileName+"."+ConfigFileExt).String(), nil
}

// Source reports which file Load would read for opts, or "" when no file
// exists and built-in defaults apply.
func Source(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath.String(), nil
	}

	cuePath, err := FilePath(opts)
	if err != nil {
		return "", err
	}
	if fileExists(cuePath) {
		return cuePath, nil
	}

	localCuePath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localCuePath) {
		return localCuePath, nil
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the config and the file it was read from.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("output_format", defaults.OutputFormat)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A custom config file path set via --config is used exclusively.
	if opts.ConfigFilePath != "" && !fileExists(opts.ConfigFilePath.String()) {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath.String()).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion("Use 'pfname config init' to create a default configuration").
			Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
			BuildError()
	}

	resolvedPath, err := Source(opts)
	if err != nil {
		return nil, "", err
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'pfname config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// The schema checks the file; environment overrides only pass through here.
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check PFNAME_* environment variables for typos").
			WithSuggestion("Run 'pfname config show' to see the effective configuration").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath types.FilesystemPath) (string, error) {
	if configDirPath != "" {
		return configDirPath.String(), nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE config file against #Config and merges
// the settings it sets into Viper. Unset settings keep their defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	doc, err := cueutil.Compile(configSchema, "#Config", data, cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	var configMap map[string]any
	if err := doc.DecodePartial(&configMap); err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file at the path FilePath
// resolves for opts. An existing file is left untouched unless overwrite is
// set. It returns the path and whether a file was written.
func CreateDefaultConfig(opts LoadOptions, overwrite bool) (string, bool, error) {
	cfgPath, err := FilePath(opts)
	if err != nil {
		return "", false, err
	}

	if !overwrite && fileExists(cfgPath) {
		return cfgPath, false, nil
	}

	if err := Save(DefaultConfig(), cfgPath); err != nil {
		return cfgPath, false, err
	}
	return cfgPath, true, nil
}

// Save writes cfg to path in CUE form, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(fspath.Dir(types.FilesystemPath(path)).String(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// pfname configuration file\n")
	sb.WriteString("// Run 'pfname config --help' for the list of settings.\n\n")

	fmt.Fprintf(&sb, "output_format: %q\n", cfg.OutputFormat)
	fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
