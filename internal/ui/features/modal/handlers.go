package modal

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/ui/features/common"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

// Signals carries the file picker input.
type Signals struct {
	Path string `json:"path"`
}

// Handlers provides HTTP handlers for the modal feature.
type Handlers struct {
	deps common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// Resolve answers the dialog with id. The select action takes the path signal
// as its payload.
func (h *Handlers) Resolve(w http.ResponseWriter, r *http.Request) {
	action, err := modal.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload string
	if action == modal.ActionSelect {
		var signals Signals
		if err := datastar.ReadSignals(r, &signals); err != nil {
			http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
			return
		}
		if signals.Path == "" {
			http.Error(w, "path is required", http.StatusBadRequest)
			return
		}
		payload = signals.Path
	}

	id := chi.URLParam(r, "id")
	if err := h.deps.Coordinator.Modals().Resolve(id, action, payload); err != nil {
		h.deps.Log().Debug("dialog resolution rejected", "id", id, "action", action, "error", err)
		switch {
		case errors.Is(err, modal.ErrNotPending):
			// Stale dialog in the page; resend the slot.
			h.deps.Notifier.Broadcast(notifier.Modal)
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, modal.ErrInvalidAction):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.deps.Notifier.Broadcast(notifier.Modal)
	w.WriteHeader(http.StatusNoContent)
}
