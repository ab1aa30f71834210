package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "dreamtool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("project", "", "")
	fs.String("prefs", "", "")
	fs.Bool("verbose", false, "")
	fs.Int("port", DefaultPort, "")
	fs.Duration("alert-duration", DefaultAlertTimeout, "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.UI.Port)
	assert.True(t, cfg.UI.AutoOpen)
	assert.True(t, cfg.UI.Watch)
	assert.True(t, cfg.Modals.Animations)
	assert.Equal(t, DefaultAlertTimeout, cfg.Alerts.DefaultDuration)
	assert.Equal(t, DefaultProjectFile, filepath.Base(cfg.ProjectPath))
	assert.True(t, filepath.IsAbs(cfg.ProjectPath))
	assert.Equal(t, "auto", cfg.Output)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	path := writeConfig(t, dir, `
project: game/world.yaml
prefs_path: ":memory:"
ui:
  port: 9000
  auto_open: false
alerts:
  default_duration: 5s
modals:
  animations: false
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, filepath.Join(dir, "game", "world.yaml"), cfg.ProjectPath)
	assert.Equal(t, ":memory:", cfg.PrefsPath)
	assert.Equal(t, 9000, cfg.UI.Port)
	assert.False(t, cfg.UI.AutoOpen)
	assert.Equal(t, 5*time.Second, cfg.Alerts.DefaultDuration)
	assert.False(t, cfg.Modals.Animations)
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_FindsFileUpward(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	writeConfig(t, dir, "ui:\n  port: 9100\n")
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.UI.Port)
	assert.Equal(t, dir, cfg.ProjectRoot)
}

func TestLoadConfig_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		args     []string
		wantPort int
		wantDur  time.Duration
	}{
		{
			name:     "file only",
			wantPort: 9000,
			wantDur:  2 * time.Second,
		},
		{
			name:     "env overrides file",
			env:      map[string]string{"DREAMTOOL_UI__PORT": "9200", "DREAMTOOL_ALERTS__DEFAULT_DURATION": "750ms"},
			wantPort: 9200,
			wantDur:  750 * time.Millisecond,
		},
		{
			name:     "flag overrides env",
			env:      map[string]string{"DREAMTOOL_UI__PORT": "9200"},
			args:     []string{"--port", "9300", "--alert-duration", "1s"},
			wantPort: 9300,
			wantDur:  time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			path := writeConfig(t, t.TempDir(), "ui:\n  port: 9000\nalerts:\n  default_duration: 2s\n")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := testFlags()
			require.NoError(t, fs.Parse(tt.args))

			cfg, err := LoadConfig(path, fs)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.UI.Port)
			assert.Equal(t, tt.wantDur, cfg.Alerts.DefaultDuration)
		})
	}
}

func TestLoadConfig_UnchangedFlagsDoNotOverride(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "ui:\n  port: 9000\n")
	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := LoadConfig(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.UI.Port)
}

func TestLoadConfig_BadFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, t.TempDir(), "ui: [unclosed\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_ToolPathExpandsEnv(t *testing.T) {
	ResetConfig()
	t.Setenv("DREAM_HOME", "/opt/dream")
	path := writeConfig(t, t.TempDir(), "tool_path: ${DREAM_HOME}/bin/dream\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/opt/dream/bin/dream", cfg.ToolPath)
}

func TestLoadConfig_PostgresPrefsNotResolved(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "prefs_path: postgres://dream@localhost/prefs\n")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://dream@localhost/prefs", cfg.PrefsPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "port too large", mutate: func(c *Config) { c.UI.Port = 70000 }, wantErr: "ui.port"},
		{name: "negative port", mutate: func(c *Config) { c.UI.Port = -1 }, wantErr: "ui.port"},
		{name: "negative duration", mutate: func(c *Config) { c.Alerts.DefaultDuration = -time.Second }, wantErr: "default_duration"},
		{name: "json output", mutate: func(c *Config) { c.Output = "json" }},
		{name: "unknown output", mutate: func(c *Config) { c.Output = "yaml" }, wantErr: "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateProject(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(existing, []byte("name: x\n"), 0o600))

	cfg := Default()
	cfg.ProjectPath = existing
	assert.NoError(t, cfg.ValidateProject())

	cfg.ProjectPath = filepath.Join(dir, "missing.yaml")
	err := cfg.ValidateProject()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	cfg.ProjectPath = ""
	assert.Error(t, cfg.ValidateProject())
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	var buf bytes.Buffer
	l := NewLogger(&buf, true)
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, GetLogger(ctx))

	GetLogger(ctx).Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}
