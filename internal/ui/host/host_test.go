package host

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/testutil"
	"github.com/octronic/dreamtool/internal/tree"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

func setup(t *testing.T, opts ...coordinator.Option) (*project.Project, *coordinator.Coordinator, *notifier.Subscription) {
	t.Helper()
	p := project.New("Demo")
	_, err := p.AddScene("Intro")
	require.NoError(t, err)
	_, err = p.AddResource("hero.png")
	require.NoError(t, err)

	n := notifier.New()
	sub := n.Subscribe()
	t.Cleanup(func() { n.Unsubscribe(sub) })

	c, err := NewCoordinator(p, n, testutil.NewTestLogger(t), opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return p, c, sub
}

func TestNavigationSetsBreadcrumbs(t *testing.T) {
	p, c, sub := setup(t)
	snap := p.Snapshot()

	tests := []struct {
		kind tree.NodeKind
		id   string
		want []string
	}{
		{tree.KindProject, "", []string{"Demo"}},
		{tree.KindSceneGroup, "", []string{"Demo", "Scenes"}},
		{tree.KindScene, snap.Scenes[0].Identifier, []string{"Demo", "Scenes", "Intro"}},
		{tree.KindResourceGroup, "", []string{"Demo", "Resources"}},
		{tree.KindResource, snap.Resources[0].Identifier, []string{"Demo", "Resources", "hero.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.NoError(t, c.Select(tt.kind, tt.id))
			assert.Equal(t, tt.want, c.Breadcrumbs())

			<-sub.C
			assert.True(t, sub.Take().Has(notifier.Breadcrumbs))
		})
	}
}

func TestPresenterPingsModal(t *testing.T) {
	_, c, sub := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan modal.Outcome, 1)
	go func() {
		out, _ := c.ConfirmSaveModified(ctx)
		done <- out
	}()

	<-sub.C
	assert.True(t, sub.Take().Has(notifier.Modal))

	d, ok := c.Modals().Pending()
	require.True(t, ok)
	require.NoError(t, c.Modals().Resolve(d.ID, modal.ActionConfirm, ""))
	assert.Equal(t, modal.OutcomeConfirmed, <-done)
}

func TestAlertExpiryPingsAlerts(t *testing.T) {
	_, c, sub := setup(t)

	c.AddAlert("brief", alerts.Info, 5*time.Millisecond)

	select {
	case <-sub.C:
	case <-time.After(time.Second):
		t.Fatal("alert expiry did not notify")
	}
	assert.True(t, sub.Take().Has(notifier.Alerts))
	assert.Equal(t, 0, c.Alerts().Len())
}
