package explorer

import (
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/tree"
)

// AddSignals are the Datastar signals sent by the add forms.
type AddSignals struct {
	SceneName    string `json:"sceneName"`
	ResourceName string `json:"resourceName"`
}

// collection binds the project and coordinator operations for one item kind.
type collection struct {
	label  string
	kind   tree.NodeKind
	add    func(p *project.Project, name string) (project.Item, error)
	remove func(p *project.Project, id string) error
	find   func(p *project.Project, id string) (project.Item, bool)
	name   func(s AddSignals) string
}

var scenes = collection{
	label:  "scene",
	kind:   tree.KindScene,
	add:    (*project.Project).AddScene,
	remove: (*project.Project).RemoveScene,
	find:   (*project.Project).Scene,
	name:   func(s AddSignals) string { return s.SceneName },
}

var resources = collection{
	label:  "resource",
	kind:   tree.KindResource,
	add:    (*project.Project).AddResource,
	remove: (*project.Project).RemoveResource,
	find:   (*project.Project).Resource,
	name:   func(s AddSignals) string { return s.ResourceName },
}
