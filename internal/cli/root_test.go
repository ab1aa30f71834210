package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octronic/dreamtool/internal/cli/config"
	"github.com/octronic/dreamtool/internal/cli/output"
	"github.com/octronic/dreamtool/internal/cli/testutil"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := NewRootCmd()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"version", "init", "ui", "browse", "shell", "tree", "list", "prefs", "doctor", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	for _, flag := range []string{"config", "project", "prefs", "verbose", "output", "port", "alert-duration"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRoot_TreeWithProjectFlag(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(t.TempDir())

	out, err := runRoot(t, "--project", filepath.Join(dir, "project.yaml"), "-o", "json", "tree")
	require.NoError(t, err)

	var root output.TreeNode
	require.NoError(t, json.Unmarshal([]byte(out), &root))
	assert.Equal(t, "Demo", root.Label)

	cfg := config.GetCurrentConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "json", cfg.Output)
}

func TestRoot_ConfigFileFlag(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cfgPath := testutil.WriteConfig(t, dir, "project: project.yaml\noutput: markdown\n")
	t.Chdir(t.TempDir())

	out, err := runRoot(t, "--config", cfgPath, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "**Resources**")
	assert.Equal(t, cfgPath, config.GetConfigFileUsed())
}

func TestRoot_InvalidOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runRoot(t, "-o", "yaml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := runRoot(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "dreamtool")
		})
	}

	_, err := runRoot(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dreamtool "+Version)
}
