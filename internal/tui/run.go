package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/project"
)

// Run starts the browser on in/out and blocks until the user quits or ctx ends.
func Run(ctx context.Context, p *project.Project, in io.Reader, out io.Writer, logger *slog.Logger, opts ...coordinator.Option) error {
	m, err := New(ctx, p, logger, opts...)
	if err != nil {
		return err
	}
	defer m.Coordinator().Close()

	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal browser: %w", err)
	}
	return nil
}
