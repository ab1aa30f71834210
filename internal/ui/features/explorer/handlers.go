package explorer

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/tree"
	"github.com/octronic/dreamtool/internal/ui/features/common"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

// Handlers provides HTTP handlers for the explorer feature.
type Handlers struct {
	deps common.Deps
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps common.Deps) *Handlers {
	return &Handlers{deps: deps}
}

// Select runs the select handler of a tree node. Containers are addressed
// with any id, conventionally "-".
func (h *Handlers) Select(w http.ResponseWriter, r *http.Request) {
	kind, err := tree.ParseNodeKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.deps.Coordinator.Select(kind, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, coordinator.ErrNodeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddScene appends a scene named by the sceneName signal.
func (h *Handlers) AddScene(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, scenes)
}

// AddResource appends a resource named by the resourceName signal.
func (h *Handlers) AddResource(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, resources)
}

// RemoveScene asks for confirmation, then removes the scene.
func (h *Handlers) RemoveScene(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, scenes)
}

// RemoveResource asks for confirmation, then removes the resource.
func (h *Handlers) RemoveResource(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, resources)
}

func (h *Handlers) add(w http.ResponseWriter, r *http.Request, c collection) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals AddSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	coord := h.deps.Coordinator
	var item project.Item
	err := coord.Edit(func() error {
		var err error
		if item, err = c.add(h.deps.Project, c.name(signals)); err != nil {
			return err
		}
		if c.kind == tree.KindScene {
			coord.AddScene(item)
		} else {
			coord.AddResource(item)
		}
		return nil
	})
	if err != nil {
		coord.AddAlert("Cannot add "+c.label+": name is required", alerts.Warning)
		h.deps.Notifier.Broadcast(notifier.Alerts)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	h.deps.Coordinator.AddAlert("Added "+c.label+" "+item.Name, alerts.Success)
	h.deps.Notifier.Broadcast(notifier.Tree | notifier.Alerts)

	// Clear the form field.
	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(AddSignals{}); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) remove(w http.ResponseWriter, r *http.Request, c collection) {
	id := chi.URLParam(r, "id")
	item, ok := c.find(h.deps.Project, id)
	if !ok {
		http.Error(w, c.label+" not found", http.StatusNotFound)
		return
	}

	req := h.deps.Coordinator.NewRequest(
		coordinator.TemplateConfirmRemove,
		coordinator.ControllerYesNo,
		map[string]string{"kind": c.label, "name": item.Name, "id": item.Identifier},
	)
	log := h.deps.Log()

	h.deps.Coordinator.Modals().ConfirmAsync(h.deps.Context(), req,
		func() {
			_ = h.deps.Coordinator.Edit(func() error {
				if err := c.remove(h.deps.Project, id); err != nil {
					log.Warn("remove confirmed for missing item", "kind", c.label, "id", id, "error", err)
				}
				if c.kind == tree.KindScene {
					h.deps.Coordinator.RemoveSceneByIdentifier(id)
				} else {
					h.deps.Coordinator.RemoveResourceByIdentifier(id)
				}
				return nil
			})
			h.deps.Coordinator.AddAlert("Removed "+c.label+" "+item.Name, alerts.Success)
			h.deps.Notifier.Broadcast(notifier.Tree | notifier.Alerts | notifier.Modal)
		},
		func() {
			log.Debug("remove declined", "kind", c.label, "id", id)
			h.deps.Notifier.Broadcast(notifier.Modal)
		},
		func(err error) {
			if errors.Is(err, modal.ErrDialogPending) {
				h.deps.Coordinator.AddAlert("Another dialog is already open", alerts.Warning)
			} else {
				log.Error("confirmation failed", "error", err)
				h.deps.Coordinator.AddAlert(err.Error(), alerts.Error)
			}
			h.deps.Notifier.Broadcast(notifier.Alerts)
		},
	)
	w.WriteHeader(http.StatusAccepted)
}

// Save writes the project to its file.
func (h *Handlers) Save(w http.ResponseWriter, _ *http.Request) {
	if err := h.deps.Coordinator.Edit(h.deps.Project.Save); err != nil {
		h.deps.Log().Error("save failed", "error", err)
		h.deps.Coordinator.AddAlert("Save failed: "+err.Error(), alerts.Error)
		h.deps.Notifier.Broadcast(notifier.Alerts)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.deps.Coordinator.AddAlert("Project saved", alerts.Success)
	h.deps.Notifier.Broadcast(notifier.Tree | notifier.Alerts)
	w.WriteHeader(http.StatusNoContent)
}

// Open asks for a project file, offering to save unsaved changes first, then
// loads it and rebuilds the tree. The dialogs run in the background.
func (h *Handlers) Open(w http.ResponseWriter, _ *http.Request) {
	go h.open()
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) open() {
	ctx := h.deps.Context()
	coord := h.deps.Coordinator
	log := h.deps.Log()
	notify := h.deps.Notifier

	fail := func(msg string, err error) {
		log.Error(msg, "error", err)
		coord.AddAlert(msg+": "+err.Error(), alerts.Error)
		notify.Broadcast(notifier.Alerts | notifier.Modal)
	}

	if h.deps.Project.IsModified() {
		outcome, err := coord.ConfirmSaveModified(ctx)
		if err != nil {
			fail("Cannot open project", err)
			return
		}
		notify.Broadcast(notifier.Modal)
		if outcome == modal.OutcomeConfirmed {
			if err := coord.Edit(h.deps.Project.Save); err != nil {
				fail("Save failed", err)
				return
			}
		}
	}

	path, ok, err := coord.OpenProject(ctx)
	if err != nil {
		fail("Cannot open project", err)
		return
	}
	notify.Broadcast(notifier.Modal)
	if !ok {
		log.Debug("open cancelled")
		return
	}

	err = coord.Edit(func() error {
		if err := h.deps.Project.Open(path); err != nil {
			return err
		}
		return coord.Refresh()
	})
	if err != nil {
		fail("Open failed", err)
		return
	}
	coord.SetBreadcrumbs([]string{h.deps.Project.Name()})
	coord.AddAlert("Opened "+h.deps.Project.Name(), alerts.Success)
	notify.Broadcast(notifier.Tree | notifier.Breadcrumbs | notifier.Alerts)
}
