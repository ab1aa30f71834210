package settings

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/octronic/dreamtool/internal/prefs"
	"github.com/octronic/dreamtool/internal/ui/components"
	"github.com/octronic/dreamtool/internal/ui/features/common"
)

// ThemeSignals is the theme picker's signal.
type ThemeSignals struct {
	Theme string `json:"theme"`
}

// Handlers provides HTTP handlers for the settings feature.
type Handlers struct {
	deps common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// Theme sends the current theme as a signal.
func (h *Handlers) Theme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.deps.Preferences(w, r).Theme(r.Context())
	sse := datastar.NewSSE(w, r)
	if err != nil {
		_ = sse.ConsoleError(err)
	}
	if err := sse.MarshalAndPatchSignals(ThemeSignals{Theme: theme}); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// SetTheme stores the chosen theme in the browser session and the shared
// store, then re-renders this browser's shell.
func (h *Handlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals ThemeSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !prefs.ValidTheme(signals.Theme) {
		http.Error(w, "unknown theme "+signals.Theme, http.StatusBadRequest)
		return
	}

	// The session cookie must be written before the SSE headers go out.
	p := h.deps.Preferences(w, r)
	if err := p.SetTheme(r.Context(), signals.Theme); err != nil {
		h.deps.Log().Error("failed to store theme", "theme", signals.Theme, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.deps.Log().Debug("theme changed", "theme", signals.Theme)

	view, err := h.deps.BuildView(r.Context(), p)
	sse := datastar.NewSSE(w, r)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(components.Shell(view)); err != nil {
		_ = sse.ConsoleError(err)
	}
}
