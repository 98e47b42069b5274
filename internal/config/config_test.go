// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pfname/pfname/internal/issue"
	"github.com/pfname/pfname/internal/testutil"
	"github.com/pfname/pfname/pkg/types"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	testutil.MustMkdirAll(t, dir, 0o755)
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, path, content)
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	want := &Config{
		OutputFormat: OutputFormatText,
		LogLevel:     LogLevelWarn,
		UI:           UIConfig{ColorScheme: ColorSchemeAuto},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should be valid, got: %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	Reset()

	testXDGPath := "/tmp/test-xdg-config"
	restoreXDG := testutil.MustSetenv(t, "XDG_CONFIG_HOME", testXDGPath)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if expected := filepath.Join(testXDGPath, AppName); dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}

	restoreXDG()
	defer testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")()
	tmpHome := t.TempDir()
	defer testutil.SetHomeDir(t, tmpHome)()

	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if expected := filepath.Join(tmpHome, ".config", AppName); dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestConfigDir_Override(t *testing.T) {
	Reset()
	defer Reset()

	SetConfigDirOverride("/custom/config/dir")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != "/custom/config/dir" {
		t.Errorf("ConfigDir() = %s, want /custom/config/dir", dir)
	}

	Reset()
	if configDirOverride != "" {
		t.Errorf("Reset() should clear the override, got %q", configDirOverride)
	}
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts LoadOptions
		want string
	}{
		{
			name: "explicit file wins",
			opts: LoadOptions{ConfigFilePath: "/etc/pfname.cue", ConfigDirPath: "/ignored"},
			want: "/etc/pfname.cue",
		},
		{
			name: "config dir override",
			opts: LoadOptions{ConfigDirPath: "/opt/pfname"},
			want: filepath.Join("/opt/pfname", "config.cue"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := FilePath(tt.opts)
			if err != nil {
				t.Fatalf("FilePath() returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FilePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	opts := LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())}
	cfg, source, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if source != "" {
		t.Errorf("source = %q, want empty when no file exists", source)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAndSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ConfigFileName+"."+ConfigFileExt)

	want := &Config{
		OutputFormat: OutputFormatYAML,
		LogLevel:     LogLevelDebug,
		UI: UIConfig{
			ColorScheme: ColorSchemeDark,
			Verbose:     true,
		},
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	got, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: types.FilesystemPath(path)})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load(Save(cfg)) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `ui: verbose: true`)

	cfg, source, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}

	want := DefaultConfig()
	want.UI.Verbose = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `output_format: "json"`)

	defer testutil.MustSetenv(t, "PFNAME_OUTPUT_FORMAT", "toml")()
	defer testutil.MustSetenv(t, "PFNAME_UI_VERBOSE", "true")()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.OutputFormat != OutputFormatTOML {
		t.Errorf("OutputFormat = %q, want env override %q", cfg.OutputFormat, OutputFormatTOML)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want env override true")
	}
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	defer testutil.MustSetenv(t, "PFNAME_LOG_LEVEL", "chatty")()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if err == nil {
		t.Fatal("expected Load() to reject an invalid log level from the environment")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got: %v", err)
	}
	if !strings.Contains(err.Error(), "validate configuration") {
		t.Errorf("error should contain operation, got: %s", err)
	}
}

func TestLoad_ActionableErrorFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `output_format: 123`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err == nil {
		t.Fatal("expected Load() to return error for invalid config")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error should be *issue.ActionableError, got: %T", err)
	}
	if ae.Operation != "load configuration" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "load configuration")
	}
	if ae.Resource != cfgPath {
		t.Errorf("Resource = %q, want %q", ae.Resource, cfgPath)
	}
	if len(ae.Suggestions) == 0 {
		t.Error("expected at least one suggestion")
	}
}

func TestLoad_SchemaRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown output format", `output_format: "xml"`},
		{"unknown top-level field", `container_engine: "docker"`},
		{"unknown ui field", `ui: interactive: true`},
		{"wrong verbose type", `ui: verbose: "yes"`},
		{"invalid syntax", `output_format: `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			if _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)}); err == nil {
				t.Errorf("Load() accepted invalid config %q", tt.content)
			}
		})
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: types.FilesystemPath(missing)})
	if err == nil {
		t.Fatal("expected error for missing custom config file")
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error should name the missing file, got: %s", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_LocalConfigFallback(t *testing.T) {
	Reset()
	defer Reset()

	workDir := t.TempDir()
	writeConfig(t, workDir, `log_level: "info"`)
	defer testutil.MustChdir(t, workDir)()

	cfg, source, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if source != ConfigFileName+"."+ConfigFileExt {
		t.Errorf("source = %q, want the working-directory config", source)
	}
	if cfg.LogLevel != LogLevelInfo {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, LogLevelInfo)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := LoadOptions{ConfigDirPath: types.FilesystemPath(filepath.Join(dir, AppName))}

	path, created, err := CreateDefaultConfig(opts, false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if !created {
		t.Error("CreateDefaultConfig() should create a missing file")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	testutil.MustWriteFile(t, path, `output_format: "json"`)

	if _, created, err := CreateDefaultConfig(opts, false); err != nil || created {
		t.Errorf("CreateDefaultConfig(overwrite=false) = created %v, err %v; want existing file kept", created, err)
	}
	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.OutputFormat != OutputFormatJSON {
		t.Errorf("existing file was overwritten: OutputFormat = %q", cfg.OutputFormat)
	}

	if _, created, err := CreateDefaultConfig(opts, true); err != nil || !created {
		t.Errorf("CreateDefaultConfig(overwrite=true) = created %v, err %v; want rewritten", created, err)
	}
	cfg, err = NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.OutputFormat != OutputFormatText {
		t.Errorf("overwrite should restore defaults: OutputFormat = %q", cfg.OutputFormat)
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	got := GenerateCUE(DefaultConfig())
	for _, want := range []string{
		`output_format: "text"`,
		`log_level: "warn"`,
		`color_scheme: "auto"`,
		`verbose: false`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("GenerateCUE() missing %q in:\n%s", want, got)
		}
	}

	// Every generated document must satisfy the schema.
	if err := validateCUE(t, got); err != nil {
		t.Errorf("generated CUE does not validate: %v", err)
	}
}

func TestConstants(t *testing.T) {
	t.Parallel()

	if AppName != "pfname" {
		t.Errorf("AppName = %s, want pfname", AppName)
	}
	if ConfigFileName != "config" {
		t.Errorf("ConfigFileName = %s, want config", ConfigFileName)
	}
	if ConfigFileExt != "cue" {
		t.Errorf("ConfigFileExt = %s, want cue", ConfigFileExt)
	}
}
