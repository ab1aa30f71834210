// Package ui provides the browser-based editor host.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/prefs"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/ui/features/common"
	"github.com/octronic/dreamtool/internal/ui/notifier"
	"github.com/octronic/dreamtool/internal/ui/router"
)

// reloadDebounce collapses the burst of events editors produce on save.
const reloadDebounce = 100 * time.Millisecond

// Server is the main UI server.
type Server struct {
	coordinator  *coordinator.Coordinator
	project      *project.Project
	prefs        prefs.Store
	sessionStore *sessions.CookieStore
	notifier     *notifier.Notifier
	port         int
	watch        bool
	dev          bool
	logger       *slog.Logger
	listener     net.Listener
}

// Config holds configuration for the UI server.
type Config struct {
	Coordinator   *coordinator.Coordinator
	Project       *project.Project
	Prefs         prefs.Store
	Notifier      *notifier.Notifier
	Port          int
	Watch         bool
	Dev           bool
	SessionSecret string
	Logger        *slog.Logger

	// Listener, when set, is used instead of listening on Port.
	Listener net.Listener
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	notify := cfg.Notifier
	if notify == nil {
		notify = notifier.New()
	}

	return &Server{
		coordinator:  cfg.Coordinator,
		project:      cfg.Project,
		prefs:        cfg.Prefs,
		sessionStore: sessionStore,
		notifier:     notify,
		port:         cfg.Port,
		watch:        cfg.Watch,
		dev:          cfg.Dev,
		logger:       logger,
		listener:     cfg.Listener,
	}
}

// Handler builds the routed HTTP handler. Work that outlives a request is
// bound to ctx.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	if s.dev {
		r.Use(middleware.Logger)
	}

	deps := common.Deps{
		Coordinator:  s.coordinator,
		Project:      s.project,
		Prefs:        s.prefs,
		SessionStore: s.sessionStore,
		Notifier:     s.notifier,
		Logger:       s.logger,
		Lifetime:     ctx,
	}
	if err := router.SetupRoutes(r, deps, s.dev); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler(egctx)
	if err != nil {
		return err
	}

	ln := s.listener
	if ln == nil {
		ln, err = net.Listen("tcp", fmt.Sprintf(":%d", s.port))
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
	}
	s.logger.Info("starting UI server", "addr", "http://"+displayAddr(ln.Addr()))

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.project.Path() != "" {
		eg.Go(func() error {
			return s.watchProject(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchProject reloads the project when its file changes on disk. The
// directory is watched so editors that replace the file are seen too.
func (s *Server) watchProject(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(s.project.Path())
	if err := watcher.Add(dir); err != nil {
		s.logger.Error("failed to watch project directory", "dir", dir, "error", err)
		// Don't fail - continue without watching
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.project.Path()) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				s.logger.Debug("project file changed", "file", event.Name)
				s.reloadProject()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// reloadProject picks up edits made to the project file outside the server.
// Content matching the last load or save, such as the server's own writes,
// is ignored, and unsaved changes are kept.
func (s *Server) reloadProject() {
	var changed bool
	err := s.coordinator.Edit(func() error {
		var err error
		if changed, err = s.project.ReloadIfChanged(); err != nil || !changed {
			return err
		}
		return s.coordinator.Refresh()
	})

	switch {
	case errors.Is(err, project.ErrUnsavedChanges):
		s.coordinator.AddAlert("Project file changed on disk; keeping unsaved changes", alerts.Warning)
		s.notifier.Broadcast(notifier.Alerts)
	case err != nil:
		s.logger.Error("reload failed", "error", err)
		s.coordinator.AddAlert("Reload failed: "+err.Error(), alerts.Error)
		s.notifier.Broadcast(notifier.Alerts)
	case !changed:
		s.logger.Debug("project file matches last save, skipping reload")
	default:
		s.coordinator.AddAlert("Project reloaded", alerts.Info)
		s.notifier.Broadcast(notifier.Tree | notifier.Alerts)
	}
}

func displayAddr(a net.Addr) string {
	if tcp, ok := a.(*net.TCPAddr); ok && tcp.IP.IsUnspecified() {
		return fmt.Sprintf("localhost:%d", tcp.Port)
	}
	return a.String()
}
