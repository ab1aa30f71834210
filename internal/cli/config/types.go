// Package config provides configuration management for the dreamtool CLI.
package config

import "time"

// UIConfig holds configuration for the web UI server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// AlertsConfig controls toast alerts.
type AlertsConfig struct {
	DefaultDuration time.Duration `koanf:"default_duration"`
}

// ModalsConfig controls dialogs.
type ModalsConfig struct {
	Animations bool `koanf:"animations"`
}

// Config holds all CLI configuration options.
type Config struct {
	ProjectPath string       `koanf:"project"`
	PrefsPath   string       `koanf:"prefs_path"`
	ToolPath    string       `koanf:"tool_path"`
	Verbose     bool         `koanf:"verbose"`
	Output      string       `koanf:"output"`
	UI          UIConfig     `koanf:"ui"`
	Alerts      AlertsConfig `koanf:"alerts"`
	Modals      ModalsConfig `koanf:"modals"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultProjectFile  = "project.yaml"
	DefaultPrefsFile    = ".dreamtool/prefs.db"
	DefaultPort         = 8765
	DefaultAlertTimeout = 3000 * time.Millisecond
	EnvPrefix           = "DREAMTOOL_"
)

// configFileNames are searched in order when no --config flag is given.
var configFileNames = []string{"dreamtool.yaml", "dreamtool.yml"}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"project":                 DefaultProjectFile,
		"prefs_path":              DefaultPrefsFile,
		"tool_path":               "",
		"verbose":                 false,
		"output":                  "auto",
		"ui.port":                 DefaultPort,
		"ui.auto_open":            true,
		"ui.watch":                true,
		"ui.session_secret":       "",
		"alerts.default_duration": DefaultAlertTimeout.String(),
		"modals.animations":       true,
	}
}
