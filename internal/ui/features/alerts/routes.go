// Package alerts lets the browser close toast alerts.
package alerts

import (
	"github.com/go-chi/chi/v5"

	"github.com/octronic/dreamtool/internal/ui/features/common"
)

// SetupRoutes registers alert routes on the router.
func SetupRoutes(router chi.Router, deps common.Deps) error {
	handlers := NewHandlers(deps)
	router.Post("/api/alerts/{index}/close", handlers.Close)
	return nil
}
