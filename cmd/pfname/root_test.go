// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/pfname/pfname/pkg/types"

	"github.com/charmbracelet/fang"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		// Save and restore package-level vars.
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{Config: defaultsProvider(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	root := NewRootCommand(app)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"id", "new", "parse", "check", "compare", "batch", "config", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("root command is missing %q (have %v)", want, names)
		}
	}

	for _, flag := range []string{"output", "verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("root command is missing persistent flag --%s", flag)
		}
	}
}

func TestHandleError_SkipsRenderedExitErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handleError(&buf, fang.Styles{}, &ExitError{Code: types.ExitMismatch})
	handleError(&buf, fang.Styles{}, &ExitError{Code: types.ExitFailure, Err: errors.New("already shown")})

	if buf.Len() != 0 {
		t.Errorf("ExitErrors should not be printed again, got %q", buf.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t, stubConfigProvider{err: errors.New("ignored")}, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if stdout == "" {
				t.Errorf("completion %s wrote no script", shell)
			}
		})
	}

	t.Run("unknown shell", func(t *testing.T) {
		t.Parallel()

		if _, _, err := runCLI(t, defaultsProvider(), "completion", "tcsh"); err == nil {
			t.Error("expected error for unsupported shell")
		}
	})
}
