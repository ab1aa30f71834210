package explorer

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/ui/features"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()
	fixture := features.SetupTestFixture(t, features.TestProject{
		Name:      "Demo",
		Scenes:    []project.Item{{Identifier: "s1", Name: "Intro"}, {Identifier: "s2", Name: "Boss"}},
		Resources: []project.Item{{Identifier: "r1", Name: "hero.png"}},
	})
	return NewHandlers(fixture.Deps), fixture
}

func alertTexts(c *coordinator.Coordinator) []string {
	var out []string
	for _, a := range c.Alerts().List() {
		out = append(out, a.Text)
	}
	return out
}

func leafIDs(c *coordinator.Coordinator, group int) []string {
	var out []string
	for _, n := range c.Tree().Children[group].Children {
		out = append(out, n.Identifier)
	}
	return out
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		kind, id   string
		wantStatus int
		wantCrumbs []string
	}{
		{"project", "project", "-", http.StatusNoContent, []string{"Demo"}},
		{"scene group", "scenes", "-", http.StatusNoContent, []string{"Demo", "Scenes"}},
		{"scene", "scene", "s2", http.StatusNoContent, []string{"Demo", "Scenes", "Boss"}},
		{"resource", "resource", "r1", http.StatusNoContent, []string{"Demo", "Resources", "hero.png"}},
		{"missing leaf", "scene", "nope", http.StatusNotFound, []string{}},
		{"bad kind", "folder", "-", http.StatusBadRequest, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fixture := setupTestHandlers(t)

			req := features.RequestWithPathParams(httptest.NewRequest(http.MethodPost, "/", nil), "kind", tt.kind, "id", tt.id)
			rec := httptest.NewRecorder()
			h.Select(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCrumbs, fixture.Coordinator.Breadcrumbs())
		})
	}
}

func TestAddScene(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	sub := fixture.Notifier.Subscribe()
	defer fixture.Notifier.Unsubscribe(sub)

	req := httptest.NewRequest(http.MethodPost, "/api/scenes", strings.NewReader(`{"sceneName":"Outro"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.AddScene(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "datastar-patch-signals")

	snap := fixture.Project.Snapshot()
	require.Len(t, snap.Scenes, 3)
	assert.Equal(t, "Outro", snap.Scenes[2].Name)
	assert.True(t, fixture.Project.IsModified())

	assert.Equal(t, []string{"s1", "s2", snap.Scenes[2].Identifier}, leafIDs(fixture.Coordinator, 0))
	assert.Equal(t, []string{"Added scene Outro"}, alertTexts(fixture.Coordinator))

	<-sub.C
	got := sub.Take()
	assert.True(t, got.Has(notifier.Tree))
	assert.True(t, got.Has(notifier.Alerts))
}

func TestAddResource_EmptyName(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/resources", strings.NewReader(`{"resourceName":"  "}`))
	rec := httptest.NewRecorder()
	h.AddResource(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, fixture.Project.Snapshot().Resources, 1)
	require.Equal(t, 1, fixture.Coordinator.Alerts().Len())
	assert.Equal(t, alerts.Warning, fixture.Coordinator.Alerts().List()[0].Kind)
}

func TestAdd_BadSignals(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/scenes", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.AddScene(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// pendingDialog waits for the confirmation dialog the handler opened.
func pendingDialog(t *testing.T, c *coordinator.Coordinator) modal.Dialog {
	t.Helper()
	var d modal.Dialog
	features.WaitFor(t, func() bool {
		var ok bool
		d, ok = c.Modals().Pending()
		return ok
	})
	return d
}

func TestRemoveScene_Confirmed(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.RequestWithPathParams(httptest.NewRequest(http.MethodDelete, "/", nil), "id", "s1")
	rec := httptest.NewRecorder()
	h.RemoveScene(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	d := pendingDialog(t, fixture.Coordinator)
	assert.Equal(t, coordinator.TemplateConfirmRemove, d.Request.Template)
	assert.Equal(t, "Intro", d.Request.Params["name"])

	// Nothing is removed before the user answers.
	assert.Len(t, fixture.Project.Snapshot().Scenes, 2)

	require.NoError(t, fixture.Coordinator.Modals().Resolve(d.ID, modal.ActionConfirm, ""))

	features.WaitFor(t, func() bool { return len(fixture.Project.Snapshot().Scenes) == 1 })
	features.WaitFor(t, func() bool { return len(leafIDs(fixture.Coordinator, 0)) == 1 })
	assert.Equal(t, []string{"s2"}, leafIDs(fixture.Coordinator, 0))
	features.WaitFor(t, func() bool { return fixture.Coordinator.Alerts().Len() == 1 })
	assert.Equal(t, []string{"Removed scene Intro"}, alertTexts(fixture.Coordinator))
}

func TestRemoveResource_DeclinedOrDismissed(t *testing.T) {
	for _, action := range []modal.Action{modal.ActionDecline, modal.ActionDismiss} {
		t.Run(action.String(), func(t *testing.T) {
			h, fixture := setupTestHandlers(t)
			sub := fixture.Notifier.Subscribe()
			defer fixture.Notifier.Unsubscribe(sub)

			req := features.RequestWithPathParams(httptest.NewRequest(http.MethodDelete, "/", nil), "id", "r1")
			h.RemoveResource(httptest.NewRecorder(), req)

			d := pendingDialog(t, fixture.Coordinator)
			<-sub.C
			sub.Take()

			require.NoError(t, fixture.Coordinator.Modals().Resolve(d.ID, action, ""))

			<-sub.C
			assert.True(t, sub.Take().Has(notifier.Modal))
			assert.Len(t, fixture.Project.Snapshot().Resources, 1)
			assert.Equal(t, []string{"r1"}, leafIDs(fixture.Coordinator, 1))
		})
	}
}

func TestRemove_NotFound(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := features.RequestWithPathParams(httptest.NewRequest(http.MethodDelete, "/", nil), "id", "missing")
	rec := httptest.NewRecorder()
	h.RemoveScene(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, pending := fixture.Coordinator.Modals().Pending()
	assert.False(t, pending)
}

func TestRemove_SecondDialogRejected(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	h.RemoveScene(httptest.NewRecorder(), features.RequestWithPathParams(httptest.NewRequest(http.MethodDelete, "/", nil), "id", "s1"))
	first := pendingDialog(t, fixture.Coordinator)

	h.RemoveScene(httptest.NewRecorder(), features.RequestWithPathParams(httptest.NewRequest(http.MethodDelete, "/", nil), "id", "s2"))
	features.WaitFor(t, func() bool { return fixture.Coordinator.Alerts().Len() == 1 })
	assert.Equal(t, []string{"Another dialog is already open"}, alertTexts(fixture.Coordinator))

	d, ok := fixture.Coordinator.Modals().Pending()
	require.True(t, ok)
	assert.Equal(t, first.ID, d.ID)
}

func TestSave(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	_, err := fixture.Project.AddScene("Outro")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Save(rec, httptest.NewRequest(http.MethodPost, "/api/project/save", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, fixture.Project.IsModified())

	data, err := os.ReadFile(fixture.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Outro")
}

func TestOpen(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	_, err := fixture.Project.AddScene("Unsaved")
	require.NoError(t, err)

	other := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("name: Other\nresources:\n  - uuid: x1\n    name: sky.png\n"), 0600))

	rec := httptest.NewRecorder()
	h.Open(rec, httptest.NewRequest(http.MethodPost, "/api/project/open", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	save := pendingDialog(t, fixture.Coordinator)
	assert.Equal(t, coordinator.TemplateSaveModified, save.Request.Template)
	require.NoError(t, fixture.Coordinator.Modals().Resolve(save.ID, modal.ActionConfirm, ""))

	var open modal.Dialog
	features.WaitFor(t, func() bool {
		d, ok := fixture.Coordinator.Modals().Pending()
		open = d
		return ok && d.ID != save.ID
	})
	assert.Equal(t, modal.KindFileOpen, open.Kind)
	require.NoError(t, fixture.Coordinator.Modals().Resolve(open.ID, modal.ActionSelect, other))

	features.WaitFor(t, func() bool { return fixture.Project.Name() == "Other" })
	features.WaitFor(t, func() bool { return len(fixture.Coordinator.Breadcrumbs()) == 1 })
	assert.Equal(t, []string{"Other"}, fixture.Coordinator.Breadcrumbs())
	assert.Equal(t, []string{"x1"}, leafIDs(fixture.Coordinator, 1))

	saved, err := os.ReadFile(fixture.Path)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "Unsaved", "confirmed save writes the old project first")
}

func TestOpen_Cancelled(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	h.Open(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/project/open", nil))

	d := pendingDialog(t, fixture.Coordinator)
	assert.Equal(t, modal.KindFileOpen, d.Kind, "clean project skips the save prompt")
	require.NoError(t, fixture.Coordinator.Modals().Resolve(d.ID, modal.ActionDismiss, ""))

	features.WaitFor(t, func() bool {
		_, ok := fixture.Coordinator.Modals().Pending()
		return !ok
	})
	assert.Equal(t, "Demo", fixture.Project.Name())
}
