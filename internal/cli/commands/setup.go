package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/octronic/dreamtool/internal/cli/config"
	"github.com/octronic/dreamtool/internal/cli/output"
	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/prefs"
	"github.com/octronic/dreamtool/internal/project"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		mode = output.ModeAuto
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// getConfig returns the current configuration, or defaults when the root
// command's pre-run did not load one.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// LoadProject validates the configured project path and loads the document.
func (c *CommandContext) LoadProject() (*project.Project, error) {
	if err := c.Cfg.ValidateProject(); err != nil {
		return nil, err
	}
	p, err := project.Load(c.Cfg.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	c.Logger.Debug("loaded project", "path", c.Cfg.ProjectPath, "name", p.Name())
	return p, nil
}

// OpenPrefs opens the preference store named by prefs_path: a PostgreSQL URL
// or a SQLite file whose directory is created. The returned cleanup closes it.
func (c *CommandContext) OpenPrefs(ctx context.Context) (prefs.ClosableStore, func(), error) {
	path := c.Cfg.PrefsPath
	if !prefs.IsPostgresDSN(path) && path != ":memory:" {
		if err := ensureDir(filepath.Dir(path)); err != nil {
			return nil, nil, fmt.Errorf("failed to create preferences directory: %w", err)
		}
	}

	store, err := prefs.Open(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open preferences: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			c.Logger.Warn("failed to close preferences", "error", err)
		}
	}
	return store, cleanup, nil
}

// Preferences wraps store with the configured tool path default.
func (c *CommandContext) Preferences(store prefs.Store) *prefs.Preferences {
	return prefs.New(store, prefs.WithDefaultToolPath(c.Cfg.ToolPath))
}

// CoordinatorOptions maps configuration onto coordinator options.
func (c *CommandContext) CoordinatorOptions() []coordinator.Option {
	return []coordinator.Option{
		coordinator.WithAlertDefault(c.Cfg.Alerts.DefaultDuration),
		coordinator.WithModalAnimations(c.Cfg.Modals.Animations),
	}
}

// ensureDir creates dir unless it is the current directory.
func ensureDir(dir string) error {
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o750)
}
