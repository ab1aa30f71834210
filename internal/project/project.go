// Package project holds the editable project document the editor UI projects.
// It only tracks what the UI needs: a name, ordered scenes and resources, and
// whether anything changed since the document was loaded.
package project

import (
	"crypto/sha256"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no scene or resource carries the identifier.
var ErrNotFound = errors.New("project: item not found")

// ErrEmptyName is returned when adding an item without a name.
var ErrEmptyName = errors.New("project: name is required")

// ErrUnsavedChanges is returned when a reload would discard in-memory edits.
var ErrUnsavedChanges = errors.New("project: unsaved changes")

// Item is a scene or resource as seen by the UI.
type Item struct {
	Identifier string `yaml:"uuid"`
	Name       string `yaml:"name"`
}

// Snapshot is a read-only view of the project at a point in time.
// Slices are copies; mutating them does not affect the project.
type Snapshot struct {
	Name      string
	Scenes    []Item
	Resources []Item
}

// Project is the in-memory project document.
type Project struct {
	mu        sync.RWMutex
	name      string
	scenes    []Item
	resources []Item
	modified  bool
	path      string

	// diskSum is the hash of the file content last loaded or saved.
	diskSum [sha256.Size]byte
}

// New creates an empty, unmodified project.
func New(name string) *Project {
	return &Project{name: name}
}

// NewIdentifier returns a fresh item identifier.
func NewIdentifier() string {
	return uuid.New().String()
}

// Name returns the project name.
func (p *Project) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

// Path returns the file the project was loaded from, if any.
func (p *Project) Path() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.path
}

// Snapshot returns a copy of the project's current contents.
func (p *Project) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		Name:      p.name,
		Scenes:    slices.Clone(p.scenes),
		Resources: slices.Clone(p.resources),
	}
}

// IsModified reports whether the project changed since it was loaded or last marked clean.
func (p *Project) IsModified() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modified
}

// MarkClean clears the modified flag.
func (p *Project) MarkClean() {
	p.mu.Lock()
	p.modified = false
	p.mu.Unlock()
}

// AddScene appends a new scene with a fresh identifier.
func (p *Project) AddScene(name string) (Item, error) {
	return p.add(&p.scenes, name)
}

// AddResource appends a new resource with a fresh identifier.
func (p *Project) AddResource(name string) (Item, error) {
	return p.add(&p.resources, name)
}

// RemoveScene removes the scene with the given identifier.
func (p *Project) RemoveScene(id string) error {
	return p.remove(&p.scenes, id)
}

// RemoveResource removes the resource with the given identifier.
func (p *Project) RemoveResource(id string) error {
	return p.remove(&p.resources, id)
}

// Scene looks up a scene by identifier.
func (p *Project) Scene(id string) (Item, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return find(p.scenes, id)
}

// Resource looks up a resource by identifier.
func (p *Project) Resource(id string) (Item, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return find(p.resources, id)
}

// replace swaps the whole document, used when the file is reloaded.
func (p *Project) replace(other *Project) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = other.name
	p.scenes = other.scenes
	p.resources = other.resources
	p.modified = false
	p.diskSum = other.diskSum
	if other.path != "" {
		p.path = other.path
	}
}

func (p *Project) add(items *[]Item, name string) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrEmptyName
	}
	item := Item{Identifier: NewIdentifier(), Name: name}

	p.mu.Lock()
	*items = append(*items, item)
	p.modified = true
	p.mu.Unlock()

	return item, nil
}

func (p *Project) remove(items *[]Item, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := slices.IndexFunc(*items, func(it Item) bool { return it.Identifier == id })
	if idx < 0 {
		return ErrNotFound
	}
	*items = slices.Delete(*items, idx, idx+1)
	p.modified = true
	return nil
}

func find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.Identifier == id {
			return it, true
		}
	}
	return Item{}, false
}
