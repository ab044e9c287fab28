package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "quartet") {
		t.Errorf("version output should mention quartet, got: %s", out)
	}
	if !strings.Contains(out, version) {
		t.Errorf("version output should contain %q, got: %s", version, out)
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("Use = %q, want version", versionCmd.Use)
	}
	if versionCmd.Short == "" {
		t.Error("Short should not be empty")
	}
}
