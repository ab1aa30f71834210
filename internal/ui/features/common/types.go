// Package common holds the dependencies and helpers shared by UI features.
package common

import (
	"context"
	"log/slog"

	"github.com/gorilla/sessions"

	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/prefs"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/ui/notifier"
)

// Deps is what every feature handler is built from.
type Deps struct {
	Coordinator  *coordinator.Coordinator
	Project      *project.Project
	Prefs        prefs.Store
	SessionStore sessions.Store
	Notifier     *notifier.Notifier
	Logger       *slog.Logger

	// Lifetime bounds work that outlives a request, such as waiting on a
	// dialog. It is cancelled when the server shuts down.
	Lifetime context.Context
}

// Log returns the logger, or a discarding one.
func (d Deps) Log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// Context returns Lifetime, or Background when unset.
func (d Deps) Context() context.Context {
	if d.Lifetime == nil {
		return context.Background()
	}
	return d.Lifetime
}
