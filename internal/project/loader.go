package project

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a project file.
type document struct {
	Name      string `yaml:"name"`
	Scenes    []Item `yaml:"scenes"`
	Resources []Item `yaml:"resources"`
}

// Load reads a project file. Items without a uuid get a generated one.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	p.path = path
	p.diskSum = sha256.Sum256(data)
	return p, nil
}

// Parse decodes a YAML project document.
func Parse(data []byte) (*Project, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = "Untitled"
	}

	return &Project{
		name:      name,
		scenes:    normalize(doc.Scenes),
		resources: normalize(doc.Resources),
	}, nil
}

// ReloadIfChanged re-reads the project file when its content differs from
// what was last loaded or saved, and reports whether the document was
// replaced. Unsaved edits are never discarded: ErrUnsavedChanges is returned
// instead. The comparison and the replacement happen under one lock.
func (p *Project) ReloadIfChanged() (bool, error) {
	path := p.Path()
	if path == "" {
		return false, fmt.Errorf("project was not loaded from a file")
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		return false, fmt.Errorf("failed to read project file: %w", err)
	}
	sum := sha256.Sum256(data)

	p.mu.Lock()
	defer p.mu.Unlock()

	if sum == p.diskSum {
		return false, nil
	}
	if p.modified {
		return false, ErrUnsavedChanges
	}
	fresh, err := Parse(data)
	if err != nil {
		return false, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	p.name = fresh.name
	p.scenes = fresh.scenes
	p.resources = fresh.resources
	p.diskSum = sum
	return true, nil
}

// Reload re-reads the project from the file it was loaded from.
// The modified flag is cleared since the document now matches disk.
func (p *Project) Reload() error {
	path := p.Path()
	if path == "" {
		return fmt.Errorf("project was not loaded from a file")
	}

	fresh, err := Load(path)
	if err != nil {
		return err
	}
	p.replace(fresh)
	return nil
}

func normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Identifier == "" {
			it.Identifier = NewIdentifier()
		}
		out = append(out, it)
	}
	return out
}

// Open replaces the project's contents with the file at path, which becomes
// the project's file.
func (p *Project) Open(path string) error {
	fresh, err := Load(path)
	if err != nil {
		return err
	}
	p.replace(fresh)
	return nil
}

// Save writes the project back to the file it was loaded from and marks it clean.
func (p *Project) Save() error {
	path := p.Path()
	if path == "" {
		return fmt.Errorf("project was not loaded from a file")
	}
	return p.SaveAs(path)
}

// SaveAs writes the project to path, which becomes the project's file.
// Edits wait for the write to finish.
func (p *Project) SaveAs(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := yaml.Marshal(document{
		Name:      p.name,
		Scenes:    p.scenes,
		Resources: p.resources,
	})
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}

	p.path = path
	p.modified = false
	p.diskSum = sha256.Sum256(data)
	return nil
}
