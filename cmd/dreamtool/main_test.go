package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/octronic/dreamtool/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(buf.String(), "dreamtool v"+cli.Version) {
		t.Errorf("unexpected version output: %s", buf.String())
	}
}

func TestHelpListsCommands(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, name := range []string{"init", "ui", "browse", "shell", "tree", "list", "prefs", "doctor", "version"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("help output missing %q", name)
		}
	}
}
