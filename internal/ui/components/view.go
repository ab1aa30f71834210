// Package components renders the editor shell. Each region carries a stable
// element id so SSE patches can replace it in place.
package components

//go:generate templ generate

import (
	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/tree"
)

// Element ids of the patchable regions.
const (
	ShellID       = "app"
	BreadcrumbsID = "breadcrumbs"
	TreeID        = "project-tree"
	AlertsID      = "alerts"
	ModalID       = "modal"
	StatusID      = "project-status"
)

// View is everything the shell needs to render.
type View struct {
	Host   coordinator.HostView
	Dialog *modal.Dialog
	Theme  string
	Themes []string
}

// Root returns the project node of the synced tree, or nil.
func (v View) Root() *tree.Node {
	if len(v.Host.TreeData) == 0 {
		return nil
	}
	return v.Host.TreeData[0]
}

// ProjectName returns the root label, falling back to a placeholder.
func (v View) ProjectName() string {
	if r := v.Root(); r != nil && r.Label != "" {
		return r.Label
	}
	return "Untitled"
}

func alertClass(k alerts.Kind) string {
	switch k {
	case alerts.Success:
		return "alert-success"
	case alerts.Warning:
		return "alert-warning"
	case alerts.Error:
		return "alert-danger"
	default:
		return "alert-info"
	}
}
