package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"

	"github.com/octronic/dreamtool/internal/ui"
	"github.com/octronic/dreamtool/internal/ui/host"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	NoBrowser bool
	Watch     bool
	Dev       bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the project editor web UI",
		Long: `Start a local web server with the project editor.

The UI provides:
- Project tree with scenes and resources
- Breadcrumbs for the current selection
- Toast alerts and confirmation dialogs
- Theme selection, remembered per browser and in the preferences database`,
		Example: `  # Start UI on default port
  dreamtool ui

  # Start on custom port
  dreamtool ui --port 3000

  # Start without auto-opening browser
  dreamtool ui --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload the project when the file changes")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Serve assets from disk and log requests")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	watch := cfg.UI.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}
	autoOpen := cfg.UI.AutoOpen && !opts.NoBrowser

	p, err := cmdCtx.LoadProject()
	if err != nil {
		return err
	}

	store, closePrefs, err := cmdCtx.OpenPrefs(cmd.Context())
	if err != nil {
		return err
	}
	defer closePrefs()

	notify := notifier.New()
	coord, err := host.NewCoordinator(p, notify, logger, cmdCtx.CoordinatorOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create coordinator: %w", err)
	}
	defer coord.Close()

	server := ui.NewServer(ui.Config{
		Coordinator:   coord,
		Project:       p,
		Prefs:         store,
		Notifier:      notify,
		Port:          cfg.UI.Port,
		Watch:         watch,
		Dev:           opts.Dev,
		SessionSecret: sessionSecret(cfg.UI.SessionSecret),
		Logger:        logger,
	})

	if autoOpen {
		go openBrowser(fmt.Sprintf("http://localhost:%d", cfg.UI.Port))
	}

	r := cmdCtx.Renderer
	r.Printf("Starting UI server on http://localhost:%d\n", cfg.UI.Port)
	r.Println(r.Muted("Press Ctrl+C to stop"))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// sessionSecret returns the configured secret, or a random one so cookies
// from earlier runs are not trusted.
func sessionSecret(configured string) string {
	if configured != "" {
		return configured
	}
	return hex.EncodeToString(securecookie.GenerateRandomKey(32))
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(context.Background(), "open", url)
	case "linux":
		cmd = exec.CommandContext(context.Background(), "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(context.Background(), "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
