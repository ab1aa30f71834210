package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port must be between 0 and 65535, got %d", c.UI.Port)
	}
	if c.Alerts.DefaultDuration < 0 {
		return fmt.Errorf("alerts.default_duration must not be negative, got %s", c.Alerts.DefaultDuration)
	}
	switch c.Output {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("output must be one of auto, text, markdown, json, got %q", c.Output)
	}
	return nil
}

// ValidateProject checks that the project file exists.
func (c *Config) ValidateProject() error {
	if c.ProjectPath == "" {
		return fmt.Errorf("project path is required\nHint: set 'project' in dreamtool.yaml or pass --project")
	}
	if _, err := os.Stat(c.ProjectPath); os.IsNotExist(err) {
		return fmt.Errorf("project file does not exist: %s\nHint: create it or use --project to specify a different path", c.ProjectPath)
	}
	return nil
}
