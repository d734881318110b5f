package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestResolveBuildInfo(t *testing.T) {
	t.Parallel()

	info := resolveBuildInfo()

	t.Run("no field is empty", func(t *testing.T) {
		t.Parallel()
		if info.Version == "" {
			t.Error("expected a version, even the devel placeholder")
		}
		if info.Commit == "" {
			t.Error("expected a commit, even the unknown placeholder")
		}
		if info.Date == "" {
			t.Error("expected a date, even the unknown placeholder")
		}
	})

	t.Run("commit is short form", func(t *testing.T) {
		t.Parallel()
		if len(info.Commit) > 7 && info.Commit != "unknown" {
			t.Errorf("commit %q longer than the 7-character short form", info.Commit)
		}
	})
}

func TestShortRevision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		revision string
		want     string
	}{
		{"0123456789abcdef0123456789abcdef01234567", "0123456"},
		{"0123456", "0123456"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := shortRevision(tt.revision); got != tt.want {
			t.Errorf("shortRevision(%q) = %q, want %q", tt.revision, got, tt.want)
		}
	}
}

func TestGetVersion(t *testing.T) {
	t.Parallel()

	if getVersion() == "" {
		t.Error("getVersion() returned empty string")
	}
}

func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()

	t.Run("command has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "version" {
			t.Errorf("expected Use to be 'version', got %q", cmd.Use)
		}
	})

	t.Run("command has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected Short to be non-empty")
		}
	})

	t.Run("command outputs version info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewVersionCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{})

		err := cmd.Execute()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "seolens version") {
			t.Errorf("expected output to contain 'seolens version', got %q", output)
		}
		if !strings.Contains(output, "commit:") {
			t.Errorf("expected output to contain 'commit:', got %q", output)
		}
		if !strings.Contains(output, "built:") {
			t.Errorf("expected output to contain 'built:', got %q", output)
		}
	})
}
