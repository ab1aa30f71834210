// Package modal resolves the pending dialog from the browser.
package modal

import (
	"github.com/go-chi/chi/v5"

	"github.com/octronic/dreamtool/internal/ui/features/common"
)

// SetupRoutes registers dialog routes on the router.
func SetupRoutes(router chi.Router, deps common.Deps) error {
	handlers := NewHandlers(deps)
	router.Post("/api/modal/{id}/{action}", handlers.Resolve)
	return nil
}
