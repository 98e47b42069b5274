// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/pfname/pfname/internal/issue"
	"github.com/pfname/pfname/pkg/codec"
	"github.com/pfname/pfname/pkg/identity"
	"github.com/pfname/pfname/pkg/types"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	microsoftPublisher = "CN=Microsoft Corporation, O=Microsoft Corporation, L=Redmond, S=Washington, C=US"
)

func TestIDCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		publisher string
		want      string
	}{
		{"Publisher Software", "zj75k085cmj1a"},
		{microsoftPublisher, "8wekyb3d8bbwe"},
		{"", "werc8gmrzge18"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t, defaultsProvider(), "id", tt.publisher, "-o", "json")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := map[string]any{"publisher": tt.publisher, "publisher_id": tt.want}
			if diff := cmp.Diff(want, decodeJSON(t, stdout)); diff != "" {
				t.Errorf("id output mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("text output", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, defaultsProvider(), "id", "Publisher Software")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"publisher:", "Publisher Software", "publisher_id:", "zj75k085cmj1a"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("text output should contain %q, got %q", want, stdout)
			}
		}
	})

	t.Run("empty publisher is kept in every format", func(t *testing.T) {
		t.Parallel()

		decoders := []struct {
			format string
			decode func(data []byte, v any) error
		}{
			{"toml", toml.Unmarshal},
			{"yaml", yaml.Unmarshal},
			{"cbor", codec.Unmarshal},
		}
		for _, d := range decoders {
			stdout, _, err := runCLI(t, defaultsProvider(), "id", "", "-o", d.format)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", d.format, err)
			}
			var got map[string]any
			if err := d.decode([]byte(stdout), &got); err != nil {
				t.Fatalf("%s: output does not decode: %v\n%s", d.format, err, stdout)
			}
			want := map[string]any{"publisher": "", "publisher_id": "werc8gmrzge18"}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s output mismatch (-want +got):\n%s", d.format, diff)
			}
		}

		stdout, _, err := runCLI(t, defaultsProvider(), "id", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, `""`) {
			t.Errorf("text output should show the empty publisher, got %q", stdout)
		}
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		t.Parallel()

		if _, _, err := runCLI(t, defaultsProvider(), "id"); err == nil {
			t.Error("expected error without a publisher")
		}
	})
}

func TestNewCommand_Formats(t *testing.T) {
	t.Parallel()

	want := map[string]any{
		"name":                "AppName",
		"publisher":           "Publisher Software",
		"publisher_id":        "zj75k085cmj1a",
		"package_family_name": "AppName_zj75k085cmj1a",
	}

	tests := []struct {
		format string
		decode func(data []byte, v any) error
	}{
		{"toml", toml.Unmarshal},
		{"yaml", yaml.Unmarshal},
		{"cbor", codec.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t, defaultsProvider(), "new", "AppName", "Publisher Software", "-o", tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got map[string]any
			if err := tt.decode([]byte(stdout), &got); err != nil {
				t.Fatalf("output is not valid %s: %v\n%s", tt.format, err, stdout)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("new output mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, defaultsProvider(), "new", "AppName", "Publisher Software", "-o", "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(want, decodeJSON(t, stdout)); diff != "" {
			t.Errorf("new output mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestNewCommand_WarnsOnSeparatorInName(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runCLI(t, defaultsProvider(), "new", "My_App", "Publisher Software", "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := decodeJSON(t, stdout)["package_family_name"]; got != "My_App_zj75k085cmj1a" {
		t.Errorf("package_family_name = %v, want My_App_zj75k085cmj1a", got)
	}
	if !strings.Contains(stderr, "contains the separator") {
		t.Errorf("stderr should warn about the separator, got %q", stderr)
	}
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, defaultsProvider(), "parse", "Microsoft.PowerShell_8wekyb3d8bbwe", "-o", "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := map[string]any{
			"name":                "Microsoft.PowerShell",
			"publisher_id":        "8wekyb3d8bbwe",
			"package_family_name": "Microsoft.PowerShell_8wekyb3d8bbwe",
		}
		if diff := cmp.Diff(want, decodeJSON(t, stdout)); diff != "" {
			t.Errorf("parse output mismatch (-want +got):\n%s", diff)
		}
	})

	tests := []struct {
		name       string
		input      string
		wantErr    error
		wantSuffix string
	}{
		{"no separator", "NoSeparatorHere", identity.ErrNoSeparator, "<name>_<publisherid>"},
		{"short id", "App_abc", identity.ErrInvalidLength, "exactly 13 characters"},
		{"bad characters", "App_zI75KO85cmL1U", identity.ErrInvalidCharacters, "except i, l, o and u"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, stderr, err := runCLI(t, defaultsProvider(), "parse", tt.input)
			exitErr := requireExitCode(t, err, types.ExitFailure)
			if !errors.Is(exitErr, tt.wantErr) {
				t.Errorf("error should wrap %v, got: %v", tt.wantErr, exitErr)
			}

			var ae *issue.ActionableError
			if !errors.As(exitErr, &ae) || ae.IssueId != issue.InvalidPackageFamilyNameId {
				t.Errorf("error should carry InvalidPackageFamilyNameId, got: %#v", exitErr.Err)
			}

			if stdout != "" {
				t.Errorf("stdout should be empty, got %q", stdout)
			}
			if !strings.Contains(stderr, "failed to parse package family name: "+tt.input) {
				t.Errorf("stderr should name the input, got %q", stderr)
			}
			if !strings.Contains(stderr, tt.wantSuffix) {
				t.Errorf("stderr should suggest %q, got %q", tt.wantSuffix, stderr)
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	t.Parallel()

	valid := []string{"zj75k085cmj1a", "ZJ75K085CMJ1A", "0000000000000"}
	for _, input := range valid {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runCLI(t, defaultsProvider(), "check", input, "-o", "json")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := map[string]any{"publisher_id": input}
			if diff := cmp.Diff(want, decodeJSON(t, stdout)); diff != "" {
				t.Errorf("check output mismatch (-want +got):\n%s", diff)
			}
		})
	}

	invalid := []struct {
		input   string
		wantErr error
	}{
		{"abc", identity.ErrInvalidLength},
		{"zI75KO85cmL1U", identity.ErrInvalidCharacters},
		{"zj75k085cmj1a0", identity.ErrInvalidLength},
	}
	for _, tt := range invalid {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			_, stderr, err := runCLI(t, defaultsProvider(), "check", tt.input)
			exitErr := requireExitCode(t, err, types.ExitFailure)
			if !errors.Is(exitErr, tt.wantErr) {
				t.Errorf("error should wrap %v, got: %v", tt.wantErr, exitErr)
			}
			if !strings.Contains(stderr, "failed to parse publisher id") {
				t.Errorf("stderr should describe the failure, got %q", stderr)
			}
		})
	}
}

func TestParseErrorSuggestions(t *testing.T) {
	t.Parallel()

	if got := parseErrorSuggestions(errors.New("unrelated")); got != nil {
		t.Errorf("unrelated errors should have no suggestions, got %v", got)
	}

	_, err := identity.ParsePublisherID("abc")
	if got := parseErrorSuggestions(err); len(got) == 0 {
		t.Error("length errors should have suggestions")
	}
}
