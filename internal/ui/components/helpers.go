package components

import (
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/tree"
)

// action builds a Datastar backend action expression, e.g. @post('/api/x').
func action(method string, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "@" + method + "('/" + strings.Join(escaped, "/") + "')"
}

func dialogAction(d *modal.Dialog, a modal.Action) string {
	return action("post", "api", "modal", d.ID, a.String())
}

func themeURL(theme string) templ.SafeURL {
	return templ.SafeURL("https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/" + url.PathEscape(theme) + "/bootstrap.min.css")
}

// selectID is the id path segment for a node; containers use "-".
func selectID(n *tree.Node) string {
	if n.Identifier == "" {
		return "-"
	}
	return n.Identifier
}

// collectionOf names the API collection a leaf belongs to.
func collectionOf(n *tree.Node) string {
	if n.Kind == tree.KindResource {
		return "resources"
	}
	return "scenes"
}

func dialogTitle(r modal.Request) string {
	switch r.Template {
	case coordinator.TemplateSaveModified:
		return "Unsaved changes"
	case coordinator.TemplateOpen:
		return "Open project"
	case coordinator.TemplateConfirmRemove:
		return "Remove " + r.Params["kind"]
	default:
		return "Confirm"
	}
}

func dialogBody(r modal.Request) string {
	switch r.Template {
	case coordinator.TemplateSaveModified:
		return "The project has been modified. Save changes?"
	case coordinator.TemplateConfirmRemove:
		return "Remove \"" + r.Params["name"] + "\" from the project?"
	default:
		if msg := r.Params["message"]; msg != "" {
			return msg
		}
		return "Are you sure?"
	}
}
