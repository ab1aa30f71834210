// Package host connects the coordinator to the browser: tree selection moves
// the breadcrumbs, dialogs and alert expiry ping the SSE streams.
package host

import (
	"context"
	"log/slog"

	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/tree"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

// NavigationHandlers returns tree handlers that move the breadcrumb trail to
// the selected node and ping the browser.
func NavigationHandlers(p *project.Project, trail *coordinator.Trail, notify *notifier.Notifier) tree.Handlers {
	set := func(labels ...string) {
		trail.Set(labels)
		notify.Broadcast(notifier.Breadcrumbs)
	}
	return tree.HandlerFuncs{
		Project: func(*tree.Node) {
			set(p.Name())
		},
		SceneGroup: func(*tree.Node) {
			set(p.Name(), tree.ScenesLabel)
		},
		Scene: func(n *tree.Node) {
			set(p.Name(), tree.ScenesLabel, n.Label)
		},
		ResourceGroup: func(*tree.Node) {
			set(p.Name(), tree.ResourcesLabel)
		},
		Resource: func(n *tree.Node) {
			set(p.Name(), tree.ResourcesLabel, n.Label)
		},
	}
}

// Presenter shows dialogs by pinging the SSE streams; the page renders the
// pending dialog it finds in the modal manager.
func Presenter(notify *notifier.Notifier) modal.Presenter {
	return modal.PresenterFunc(func(context.Context, modal.Dialog) error {
		notify.Broadcast(notifier.Modal)
		return nil
	})
}

// NewCoordinator builds the coordinator the web host drives, wired so that
// navigation, dialogs and alert expiry reach the browser.
func NewCoordinator(p *project.Project, notify *notifier.Notifier, logger *slog.Logger, opts ...coordinator.Option) (*coordinator.Coordinator, error) {
	trail := coordinator.NewTrail()
	base := []coordinator.Option{
		coordinator.WithLogger(logger),
		coordinator.WithTrail(trail),
		coordinator.WithPresenter(Presenter(notify)),
		coordinator.WithOnChange(func() { notify.Broadcast(notifier.Alerts) }),
	}
	return coordinator.New(p, NavigationHandlers(p, trail, notify), append(base, opts...)...)
}
