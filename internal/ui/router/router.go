// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	alertsFeature "github.com/octronic/dreamtool/internal/ui/features/alerts"
	"github.com/octronic/dreamtool/internal/ui/features/common"
	explorerFeature "github.com/octronic/dreamtool/internal/ui/features/explorer"
	homeFeature "github.com/octronic/dreamtool/internal/ui/features/home"
	modalFeature "github.com/octronic/dreamtool/internal/ui/features/modal"
	settingsFeature "github.com/octronic/dreamtool/internal/ui/features/settings"
	"github.com/octronic/dreamtool/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps common.Deps, isDev bool) error {
	if isDev {
		setupReload(router)
	}

	router.Handle("/static/*", resources.Handler())

	for _, setup := range []func(chi.Router, common.Deps) error{
		homeFeature.SetupRoutes,
		explorerFeature.SetupRoutes,
		alertsFeature.SetupRoutes,
		modalFeature.SetupRoutes,
		settingsFeature.SetupRoutes,
	} {
		if err := setup(router, deps); err != nil {
			return err
		}
	}
	return nil
}

// setupReload lets a dev build tell open pages to reload after a rebuild:
// pages hold /reload open, the build script hits /hotreload.
func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
