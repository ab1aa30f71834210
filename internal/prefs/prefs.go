// Package prefs stores the editor's persisted preferences: the UI theme and
// the path of the engine executable. Missing values fall back to defaults.
package prefs

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Preference keys.
const (
	KeyTheme    = "theme"
	KeyToolPath = "dream-bin"
)

// Defaults used when a key has never been written.
const (
	DefaultTheme    = "simplex"
	DefaultToolPath = "dream"
)

// Themes lists the selectable UI themes.
var Themes = []string{"simplex", "cerulean", "cosmo", "darkly", "flatly", "lumen", "sandstone", "slate", "superhero", "yeti"}

// ValidTheme reports whether name is one of Themes.
func ValidTheme(name string) bool {
	return slices.Contains(Themes, name)
}

// Store is a string key/value backend.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Preferences wraps a Store with typed accessors.
type Preferences struct {
	store           Store
	defaultToolPath string
}

// Option configures Preferences.
type Option func(*Preferences)

// WithDefaultToolPath overrides the tool path returned when none is stored.
func WithDefaultToolPath(path string) Option {
	return func(p *Preferences) {
		if path != "" {
			p.defaultToolPath = path
		}
	}
}

// New creates typed accessors over store.
func New(store Store, opts ...Option) *Preferences {
	p := &Preferences{store: store, defaultToolPath: DefaultToolPath}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Theme returns the stored theme or DefaultTheme. On a backend error the
// default is returned together with the error.
func (p *Preferences) Theme(ctx context.Context) (string, error) {
	return p.getOrDefault(ctx, KeyTheme, DefaultTheme)
}

// SetTheme stores the theme.
func (p *Preferences) SetTheme(ctx context.Context, theme string) error {
	return p.set(ctx, KeyTheme, theme)
}

// ToolPath returns the stored executable path or the configured default.
func (p *Preferences) ToolPath(ctx context.Context) (string, error) {
	return p.getOrDefault(ctx, KeyToolPath, p.defaultToolPath)
}

// SetToolPath stores the executable path.
func (p *Preferences) SetToolPath(ctx context.Context, path string) error {
	return p.set(ctx, KeyToolPath, path)
}

// Get returns any preference by key, with the built-in default for known keys.
func (p *Preferences) Get(ctx context.Context, key string) (string, error) {
	switch key {
	case KeyTheme:
		return p.Theme(ctx)
	case KeyToolPath:
		return p.ToolPath(ctx)
	default:
		return p.getOrDefault(ctx, key, "")
	}
}

// Set stores any preference by key.
func (p *Preferences) Set(ctx context.Context, key, value string) error {
	return p.set(ctx, key, value)
}

func (p *Preferences) getOrDefault(ctx context.Context, key, def string) (string, error) {
	v, ok, err := p.store.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	if !ok || v == "" {
		return def, nil
	}
	return v, nil
}

func (p *Preferences) set(ctx context.Context, key, value string) error {
	if err := p.store.Set(ctx, key, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}
