// Package explorer handles the project tree: selection, adding and removing
// scenes and resources, saving and opening projects.
package explorer

import (
	"github.com/go-chi/chi/v5"

	"github.com/octronic/dreamtool/internal/ui/features/common"
)

// SetupRoutes registers explorer routes on the router.
func SetupRoutes(router chi.Router, deps common.Deps) error {
	handlers := NewHandlers(deps)

	router.Route("/api", func(r chi.Router) {
		r.Post("/tree/select/{kind}/{id}", handlers.Select)

		r.Post("/scenes", handlers.AddScene)
		r.Delete("/scenes/{id}", handlers.RemoveScene)
		r.Post("/resources", handlers.AddResource)
		r.Delete("/resources/{id}", handlers.RemoveResource)

		r.Post("/project/save", handlers.Save)
		r.Post("/project/open", handlers.Open)
	})

	return nil
}
