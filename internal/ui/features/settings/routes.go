// Package settings reads and writes the UI theme preference.
package settings

import (
	"github.com/go-chi/chi/v5"

	"github.com/octronic/dreamtool/internal/ui/features/common"
)

// SetupRoutes registers settings routes on the router.
func SetupRoutes(router chi.Router, deps common.Deps) error {
	handlers := NewHandlers(deps)

	router.Route("/api/settings", func(r chi.Router) {
		r.Get("/theme", handlers.Theme)
		r.Post("/theme", handlers.SetTheme)
	})

	return nil
}
