package home

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/octronic/dreamtool/internal/prefs"
	"github.com/octronic/dreamtool/internal/ui/components"
	"github.com/octronic/dreamtool/internal/ui/features/common"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	deps common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// HomePage renders the full editor page.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.BuildView(r.Context(), h.deps.Preferences(w, r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := components.Page(view.ProjectName(), view).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HomePageUpdates is the long-lived SSE endpoint. The initial state is
// rendered by HomePage; this only pushes the regions that change afterwards.
func (h *Handlers) HomePageUpdates(w http.ResponseWriter, r *http.Request) {
	p := h.deps.Preferences(w, r)
	sse := datastar.NewSSE(w, r)

	sub := h.deps.Notifier.Subscribe()
	defer h.deps.Notifier.Unsubscribe(sub)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.C:
			if err := h.sendChanges(r, sse, p, sub.Take()); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

func (h *Handlers) sendChanges(r *http.Request, sse *datastar.ServerSentEventGenerator, p *prefs.Preferences, reason notifier.Reason) error {
	view, err := h.deps.BuildView(r.Context(), p)
	if err != nil {
		return err
	}
	h.deps.Log().Debug("pushing view update", "reason", reason)

	if reason.Has(notifier.Theme) {
		return sse.PatchElementTempl(components.Shell(view))
	}
	if reason.Has(notifier.Tree) {
		if err := sse.PatchElementTempl(components.Tree(view.Root())); err != nil {
			return err
		}
		if err := sse.PatchElementTempl(components.Status(view)); err != nil {
			return err
		}
	}
	if reason.Has(notifier.Breadcrumbs) {
		if err := sse.PatchElementTempl(components.Breadcrumbs(view.Host.Breadcrumbs)); err != nil {
			return err
		}
	}
	if reason.Has(notifier.Alerts) {
		if err := sse.PatchElementTempl(components.Alerts(view.Host.AlertList)); err != nil {
			return err
		}
	}
	if reason.Has(notifier.Modal) {
		if err := sse.PatchElementTempl(components.Modal(view.Dialog)); err != nil {
			return err
		}
	}
	return nil
}
