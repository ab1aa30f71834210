// Package tui is the terminal host: a bubbletea browser over the project tree
// with the same alerts, breadcrumbs and dialogs as the web UI.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/tree"
)

// dialogMsg announces a dialog that needs an answer.
type dialogMsg struct{ dialog modal.Dialog }

// changedMsg asks for a re-sync after a change the model did not make.
type changedMsg struct{}

// Host feeds coordinator callbacks into the bubbletea loop.
type Host struct {
	events chan tea.Msg
	trail  *coordinator.Trail
}

// NewHost creates a host with its own breadcrumb trail.
func NewHost() *Host {
	return &Host{
		events: make(chan tea.Msg, 16),
		trail:  coordinator.NewTrail(),
	}
}

// Present implements modal.Presenter by handing the dialog to the model.
func (h *Host) Present(ctx context.Context, d modal.Dialog) error {
	select {
	case h.events <- dialogMsg{dialog: d}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// notify queues a re-sync, dropping it when one is already queued.
func (h *Host) notify() {
	select {
	case h.events <- changedMsg{}:
	default:
	}
}

// Handlers returns tree handlers that move the breadcrumb trail.
func (h *Host) Handlers(p *project.Project) tree.Handlers {
	set := func(labels ...string) { h.trail.Set(labels) }
	return tree.HandlerFuncs{
		Project:       func(*tree.Node) { set(p.Name()) },
		SceneGroup:    func(*tree.Node) { set(p.Name(), tree.ScenesLabel) },
		Scene:         func(n *tree.Node) { set(p.Name(), tree.ScenesLabel, n.Label) },
		ResourceGroup: func(*tree.Node) { set(p.Name(), tree.ResourcesLabel) },
		Resource:      func(n *tree.Node) { set(p.Name(), tree.ResourcesLabel, n.Label) },
	}
}

// NewCoordinator builds a coordinator wired to this host.
func (h *Host) NewCoordinator(p *project.Project, logger *slog.Logger, opts ...coordinator.Option) (*coordinator.Coordinator, error) {
	// Host wiring goes last so callers cannot replace it.
	all := append(append([]coordinator.Option{coordinator.WithLogger(logger)}, opts...),
		coordinator.WithTrail(h.trail),
		coordinator.WithPresenter(h),
		coordinator.WithOnChange(h.notify),
		coordinator.WithModalAnimations(false),
	)
	return coordinator.New(p, h.Handlers(p), all...)
}

// wait returns a command that delivers the next host event.
func (h *Host) wait() tea.Cmd {
	return func() tea.Msg {
		return <-h.events
	}
}
