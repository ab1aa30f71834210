// Package resources serves the editor's static assets.
package resources

import "net/http"

// StaticDirectoryPath is the path to static assets from the module root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}

func stripped(h http.Handler) http.Handler {
	return http.StripPrefix("/static/", h)
}
