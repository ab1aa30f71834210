package common

import (
	"context"
	"net/http"

	"github.com/octronic/dreamtool/internal/prefs"
	"github.com/octronic/dreamtool/internal/ui/components"
)

// Preferences layers the browser session over the persisted store, so a theme
// picked in one browser wins there while new browsers get the last saved one.
func (d Deps) Preferences(w http.ResponseWriter, r *http.Request) *prefs.Preferences {
	layers := prefs.Layered{}
	if d.SessionStore != nil {
		layers = append(layers, prefs.FromRequest(d.SessionStore, w, r))
	}
	if d.Prefs != nil {
		layers = append(layers, d.Prefs)
	}
	return prefs.New(layers)
}

// BuildView syncs the coordinator into a fresh host view.
func (d Deps) BuildView(ctx context.Context, p *prefs.Preferences) (components.View, error) {
	v := components.View{Themes: prefs.Themes}
	if err := d.Coordinator.SyncTo(&v.Host); err != nil {
		return v, err
	}
	if dlg, ok := d.Coordinator.Modals().Pending(); ok {
		v.Dialog = &dlg
	}

	theme, err := p.Theme(ctx)
	if err != nil {
		d.Log().Warn("failed to read theme preference", "error", err)
	}
	v.Theme = theme
	return v, nil
}
