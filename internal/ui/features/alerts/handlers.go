package alerts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/ui/features/common"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

// Handlers provides HTTP handlers for the alerts feature.
type Handlers struct {
	deps common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// Close removes the alert at the given position. A stale index (the alert
// already expired) is answered with 404 and leaves the list alone.
func (h *Handlers) Close(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid alert index", http.StatusBadRequest)
		return
	}

	if err := h.deps.Coordinator.CloseAlert(index); err != nil {
		if errors.Is(err, alerts.ErrIndexOutOfRange) {
			// The browser is showing a stale list; resend it.
			h.deps.Notifier.Broadcast(notifier.Alerts)
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.deps.Notifier.Broadcast(notifier.Alerts)
	w.WriteHeader(http.StatusNoContent)
}
