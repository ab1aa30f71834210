package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/testutil"
	"github.com/octronic/dreamtool/internal/tree"
)

func newTestProject(t *testing.T) *project.Project {
	t.Helper()
	p, err := project.Parse([]byte(`
name: Demo
scenes:
  - {uuid: s1, name: Intro}
  - {uuid: s2, name: Level}
  - {uuid: s3, name: Credits}
resources:
  - {uuid: r1, name: Crate}
`))
	require.NoError(t, err)
	return p
}

func newTestCoordinator(t *testing.T, p Project, opts ...Option) *Coordinator {
	t.Helper()
	opts = append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)
	c, err := New(p, tree.HandlerFuncs{}, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func childIDs(n *tree.Node) []string {
	out := []string{}
	for _, c := range n.Children {
		out = append(out, c.Identifier)
	}
	return out
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(nil, tree.HandlerFuncs{})
	assert.ErrorIs(t, err, ErrNoProject)

	_, err = New(project.New("x"), nil)
	assert.ErrorIs(t, err, ErrNoHostController)

	var funcs *tree.HandlerFuncs
	_, err = New(project.New("x"), funcs)
	assert.ErrorIs(t, err, ErrNoHostController)
}

func TestNew_BuildsTree(t *testing.T) {
	c := newTestCoordinator(t, newTestProject(t))

	root := c.Tree()
	require.NotNil(t, root)
	assert.Equal(t, "Demo", root.Label)
	assert.Equal(t, []string{"s1", "s2", "s3"}, childIDs(tree.Category(root, tree.KindSceneGroup)))
}

func TestRefresh_StructurallyStable(t *testing.T) {
	c := newTestCoordinator(t, newTestProject(t))
	before := c.Tree()

	require.NoError(t, c.Refresh())
	assert.True(t, tree.Equal(before, c.Tree()))
}

func TestRemoveSceneByIdentifier(t *testing.T) {
	c := newTestCoordinator(t, newTestProject(t))

	assert.True(t, c.RemoveSceneByIdentifier("s2"))
	assert.Equal(t, []string{"s1", "s3"}, childIDs(tree.Category(c.Tree(), tree.KindSceneGroup)))

	assert.False(t, c.RemoveSceneByIdentifier("s2"), "second removal is a no-op")
	assert.False(t, c.RemoveResourceByIdentifier("s1"), "scene id in resource group")
	assert.Len(t, tree.Category(c.Tree(), tree.KindSceneGroup).Children, 2)
	assert.Len(t, tree.Category(c.Tree(), tree.KindResourceGroup).Children, 1)
}

func TestAddMatchesRefresh(t *testing.T) {
	p := newTestProject(t)
	c := newTestCoordinator(t, p)

	item, err := p.AddResource("Barrel")
	require.NoError(t, err)
	c.AddResource(item)
	require.NoError(t, p.RemoveScene("s1"))
	c.RemoveSceneByIdentifier("s1")

	incremental := c.Tree()
	require.NoError(t, c.Refresh())
	assert.True(t, tree.Equal(incremental, c.Tree()))

	n, ok := c.FindResource(item.Identifier)
	require.True(t, ok)
	assert.Equal(t, "Barrel", n.Label)
	_, ok = c.FindScene("s1")
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	var got []string
	rec := func(n *tree.Node) { got = append(got, n.Kind.String()+":"+n.Identifier) }
	h := tree.HandlerFuncs{Project: rec, SceneGroup: rec, Scene: rec, ResourceGroup: rec, Resource: rec}

	c, err := New(newTestProject(t), h, WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)

	require.NoError(t, c.Select(tree.KindProject, ""))
	require.NoError(t, c.Select(tree.KindResourceGroup, ""))
	require.NoError(t, c.Select(tree.KindScene, "s3"))
	require.NoError(t, c.Select(tree.KindResource, "r1"))
	assert.ErrorIs(t, c.Select(tree.KindScene, "missing"), ErrNodeNotFound)

	assert.Equal(t, []string{"project:", "resources:", "scene:s3", "resource:r1"}, got)
}

func TestBreadcrumbs(t *testing.T) {
	c := newTestCoordinator(t, newTestProject(t))

	c.SetBreadcrumbs([]string{})
	assert.Equal(t, []string{}, c.Breadcrumbs())

	c.SetBreadcrumbs([]string{"Project", "Resources"})
	assert.Equal(t, []string{"Project", "Resources"}, c.Breadcrumbs())

	got := c.Breadcrumbs()
	got[0] = "mutated"
	assert.Equal(t, []string{"Project", "Resources"}, c.Breadcrumbs())

	in := []string{"A"}
	c.SetBreadcrumbs(in)
	in[0] = "mutated"
	assert.Equal(t, []string{"A"}, c.Breadcrumbs())

	c.SetBreadcrumbs(nil)
	assert.NotNil(t, c.Breadcrumbs())
	assert.Empty(t, c.Breadcrumbs())
}

func TestSharedTrail(t *testing.T) {
	trail := NewTrail()
	c := newTestCoordinator(t, newTestProject(t), WithTrail(trail))

	trail.Set([]string{"Demo", "Scenes"})
	assert.Equal(t, []string{"Demo", "Scenes"}, c.Breadcrumbs())
}

func TestAlerts(t *testing.T) {
	c := newTestCoordinator(t, newTestProject(t), WithAlertDefault(0))

	c.AddAlert("A", alerts.Info)
	c.AddAlert("B", alerts.Info)
	c.AddAlert("C", alerts.Info)
	require.NoError(t, c.CloseAlert(1))

	list := c.Alerts().List()
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Text)
	assert.Equal(t, "C", list[1].Text)

	assert.ErrorIs(t, c.CloseAlert(5), alerts.ErrIndexOutOfRange)
	assert.Equal(t, 2, c.Alerts().Len())
}

func TestAlertExpiryNotifiesHost(t *testing.T) {
	changed := make(chan struct{}, 1)
	c := newTestCoordinator(t, newTestProject(t), WithOnChange(func() { changed <- struct{}{} }))

	c.AddAlert("brief", alerts.Success, 5*time.Millisecond)

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("expiry was not reported")
	}
	assert.Zero(t, c.Alerts().Len())
}

func TestSyncTo(t *testing.T) {
	p := newTestProject(t)
	c := newTestCoordinator(t, p)

	c.AddAlert("x", alerts.Info)
	c.SetBreadcrumbs([]string{"P"})

	host := &HostView{
		AlertList:   []alerts.Entry{{Text: "stale"}},
		Breadcrumbs: []string{"stale"},
	}
	require.NoError(t, c.SyncTo(host))

	require.Len(t, host.AlertList, 1)
	assert.Equal(t, "x", host.AlertList[0].Text)
	assert.Equal(t, alerts.Info, host.AlertList[0].Kind)
	assert.Equal(t, []string{"P"}, host.Breadcrumbs)
	require.Len(t, host.TreeData, 1)
	assert.Equal(t, "Demo", host.TreeData[0].Label)
	assert.False(t, host.IsProjectModified)

	_, err := p.AddScene("New")
	require.NoError(t, err)
	require.NoError(t, c.SyncTo(host))
	assert.True(t, host.IsProjectModified)
}

func TestSyncTo_HostOwnsCopies(t *testing.T) {
	c := newTestCoordinator(t, newTestProject(t))

	v := c.View()
	scenes := tree.Category(v.TreeData[0], tree.KindSceneGroup)
	scenes.Children = nil

	assert.Len(t, tree.Category(c.Tree(), tree.KindSceneGroup).Children, 3)
}

func TestSyncTo_NilHost(t *testing.T) {
	c := newTestCoordinator(t, newTestProject(t))
	assert.ErrorIs(t, c.SyncTo(nil), ErrNoHost)
}

func TestConfirmSaveModified(t *testing.T) {
	presented := make(chan modal.Dialog, 1)
	presenter := modal.PresenterFunc(func(_ context.Context, d modal.Dialog) error {
		presented <- d
		return nil
	})
	c := newTestCoordinator(t, newTestProject(t), WithPresenter(presenter), WithModalAnimations(false))

	done := make(chan modal.Outcome, 1)
	go func() {
		o, err := c.ConfirmSaveModified(context.Background())
		assert.NoError(t, err)
		done <- o
	}()

	d := <-presented
	assert.Equal(t, TemplateSaveModified, d.Request.Template)
	assert.Equal(t, ControllerYesNo, d.Request.Controller)
	assert.False(t, d.Request.Animate)

	require.NoError(t, c.Modals().Resolve(d.ID, modal.ActionDismiss, ""))
	select {
	case o := <-done:
		assert.Equal(t, modal.OutcomeDeclined, o)
	case <-time.After(time.Second):
		t.Fatal("confirmation did not resolve")
	}
}

func TestOpenProject(t *testing.T) {
	presented := make(chan modal.Dialog, 1)
	presenter := modal.PresenterFunc(func(_ context.Context, d modal.Dialog) error {
		presented <- d
		return nil
	})
	c := newTestCoordinator(t, newTestProject(t), WithPresenter(presenter))

	type res struct {
		path string
		ok   bool
	}
	done := make(chan res, 1)
	go func() {
		path, ok, err := c.OpenProject(context.Background())
		assert.NoError(t, err)
		done <- res{path, ok}
	}()

	d := <-presented
	assert.Equal(t, TemplateOpen, d.Request.Template)
	assert.True(t, d.Request.Animate)
	require.NoError(t, c.Modals().Resolve(d.ID, modal.ActionSelect, "/tmp/p.yaml"))

	select {
	case r := <-done:
		assert.Equal(t, res{"/tmp/p.yaml", true}, r)
	case <-time.After(time.Second):
		t.Fatal("open did not resolve")
	}
}

func TestDiagnosticsAreLogged(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	c, err := New(newTestProject(t), tree.HandlerFuncs{}, WithLogger(logger))
	require.NoError(t, err)
	defer c.Close()

	_ = c.CloseAlert(3)
	c.RemoveResourceByIdentifier("ghost")

	out := logs.String()
	assert.Contains(t, out, "close alert rejected")
	assert.Contains(t, out, "remove skipped, node not found")
	assert.Contains(t, out, "id=ghost")
	assert.Zero(t, c.Alerts().Len(), "diagnostics never become toast alerts")
}

func TestEdit_ReturnsError(t *testing.T) {
	c := newTestCoordinator(t, newTestProject(t))
	boom := errors.New("boom")
	assert.ErrorIs(t, c.Edit(func() error { return boom }), boom)
	assert.NoError(t, c.Edit(func() error { return nil }))
}

func TestEdit_RefreshDoesNotDuplicateLeaves(t *testing.T) {
	p := newTestProject(t)
	c := newTestCoordinator(t, p)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 50 {
			_ = c.Edit(func() error {
				item, err := p.AddScene(fmt.Sprintf("scene %d", i))
				if err != nil {
					return err
				}
				c.AddScene(item)
				return nil
			})
		}
	}()
	go func() {
		defer wg.Done()
		for range 50 {
			_ = c.Edit(c.Refresh)
		}
	}()
	wg.Wait()

	want, err := tree.Generate(p.Snapshot(), tree.HandlerFuncs{})
	require.NoError(t, err)
	assert.True(t, tree.Equal(want, c.Tree()), "tree matches a full rebuild")
	assert.Len(t, tree.Category(c.Tree(), tree.KindSceneGroup).Children, 53)
}
