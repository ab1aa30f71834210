package commands

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/octronic/dreamtool/internal/tui"
)

// ErrNotTerminal is returned when browse is started without an interactive terminal.
var ErrNotTerminal = errors.New("browse requires an interactive terminal; use 'dreamtool tree' for piped output")

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the project tree in the terminal",
		Long: `Open the project tree in an interactive terminal view.

Keys:
  up/down, k/j   move
  enter          select (updates breadcrumbs)
  d              remove the selected scene or resource
  x              close the oldest alert
  ctrl+s         save the project
  q              quit`,
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec
		return ErrNotTerminal
	}

	cmdCtx := NewCommandContext(cmd)
	p, err := cmdCtx.LoadProject()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, p, os.Stdin, os.Stdout, cmdCtx.Logger, cmdCtx.CoordinatorOptions()...)
}
