// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/prefs"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/testutil"
	"github.com/octronic/dreamtool/internal/ui/features/common"
	"github.com/octronic/dreamtool/internal/ui/host"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

// TestProject describes the project file a fixture starts from.
type TestProject struct {
	Name      string
	Scenes    []project.Item
	Resources []project.Item
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Deps        common.Deps
	Project     *project.Project
	Coordinator *coordinator.Coordinator
	Notifier    *notifier.Notifier
	Prefs       *prefs.SQLiteStore
	Path        string
}

// SetupTestFixture writes tp to a temporary project file and loads it. Items
// without an Identifier get a generated one.
func SetupTestFixture(t *testing.T, tp TestProject) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(renderProject(tp)), 0600))
	p, err := project.Load(path)
	require.NoError(t, err)

	store := prefs.NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })

	notify := notifier.New()
	coord, err := host.NewCoordinator(p, notify, logger)
	require.NoError(t, err)
	t.Cleanup(coord.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &TestFixture{
		Deps: common.Deps{
			Coordinator:  coord,
			Project:      p,
			Prefs:        store,
			SessionStore: NewTestSessionStore(),
			Notifier:     notify,
			Logger:       logger,
			Lifetime:     ctx,
		},
		Project:     p,
		Coordinator: coord,
		Notifier:    notify,
		Prefs:       store,
		Path:        path,
	}
}

// WaitFor polls cond until it holds or the timeout expires.
func WaitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

// RequestWithPathParams wraps a request with chi URL params given as key, value pairs.
func RequestWithPathParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

func renderProject(tp TestProject) string {
	name := tp.Name
	if name == "" {
		name = "Test Project"
	}
	out := "name: " + name + "\n"
	section := func(key string, items []project.Item) {
		if len(items) == 0 {
			return
		}
		out += key + ":\n"
		for _, it := range items {
			if it.Identifier != "" {
				out += "  - uuid: " + it.Identifier + "\n    name: " + it.Name + "\n"
			} else {
				out += "  - name: " + it.Name + "\n"
			}
		}
	}
	section("scenes", tp.Scenes)
	section("resources", tp.Resources)
	return out
}
