// Package tree projects a project snapshot into the navigable tree shown in the
// editor sidebar: a project root with a "Scenes" and a "Resources" category,
// each holding one leaf per item.
package tree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/octronic/dreamtool/internal/project"
)

// Category labels, in the order they appear under the root.
const (
	ScenesLabel    = "Scenes"
	ResourcesLabel = "Resources"
)

// ErrNoHandlers is returned when a tree is generated without a host controller.
var ErrNoHandlers = errors.New("tree: no host controller handlers registered")

// NodeKind identifies what a node stands for.
type NodeKind int

// Node kinds.
const (
	KindProject NodeKind = iota
	KindSceneGroup
	KindScene
	KindResourceGroup
	KindResource
)

func (k NodeKind) String() string {
	switch k {
	case KindProject:
		return "project"
	case KindSceneGroup:
		return "scenes"
	case KindScene:
		return "scene"
	case KindResourceGroup:
		return "resources"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// ParseNodeKind is the inverse of NodeKind.String.
func ParseNodeKind(s string) (NodeKind, error) {
	for k := KindProject; k <= KindResource; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("tree: unknown node kind %q", s)
}

// SelectFunc is invoked when a node is selected in the host view.
type SelectFunc func(n *Node)

// Node is a display node. Root and category nodes have an empty Identifier.
type Node struct {
	Label      string
	Identifier string
	Kind       NodeKind
	Children   []*Node
	OnSelect   SelectFunc
}

// Select invokes the node's select handler, if any.
func (n *Node) Select() {
	if n != nil && n.OnSelect != nil {
		n.OnSelect(n)
	}
}

// IsLeaf reports whether the node is an addressable scene or resource.
func (n *Node) IsLeaf() bool {
	return n.Kind == KindScene || n.Kind == KindResource
}

// Generate builds a fresh tree from the snapshot. Leaves keep the snapshot order.
func Generate(snap project.Snapshot, h Handlers) (*Node, error) {
	if Missing(h) {
		return nil, ErrNoHandlers
	}

	scenes := &Node{
		Label:    ScenesLabel,
		Kind:     KindSceneGroup,
		Children: make([]*Node, 0, len(snap.Scenes)),
		OnSelect: h.OnSceneGroupSelect,
	}
	for _, s := range snap.Scenes {
		AddChild(scenes, NewScene(s, h))
	}

	resources := &Node{
		Label:    ResourcesLabel,
		Kind:     KindResourceGroup,
		Children: make([]*Node, 0, len(snap.Resources)),
		OnSelect: h.OnResourceGroupSelect,
	}
	for _, r := range snap.Resources {
		AddChild(resources, NewResource(r, h))
	}

	return &Node{
		Label:    snap.Name,
		Kind:     KindProject,
		Children: []*Node{scenes, resources},
		OnSelect: h.OnProjectSelect,
	}, nil
}

// NewScene creates a scene leaf bound to the scene handler.
func NewScene(item project.Item, h Handlers) *Node {
	return &Node{
		Label:      item.Name,
		Identifier: item.Identifier,
		Kind:       KindScene,
		Children:   []*Node{},
		OnSelect:   h.OnSceneSelect,
	}
}

// NewResource creates a resource leaf bound to the resource handler.
func NewResource(item project.Item, h Handlers) *Node {
	return &Node{
		Label:      item.Name,
		Identifier: item.Identifier,
		Kind:       KindResource,
		Children:   []*Node{},
		OnSelect:   h.OnResourceSelect,
	}
}

// FindByIdentifier scans children in order and returns the first node with id.
// Duplicate identifiers are tolerated: the first match wins.
func FindByIdentifier(children []*Node, id string) *Node {
	for _, c := range children {
		if c != nil && c.Identifier == id {
			return c
		}
	}
	return nil
}

// AddChild appends node to the end of the category's children.
func AddChild(category, node *Node) {
	if category == nil || node == nil {
		return
	}
	category.Children = append(category.Children, node)
}

// RemoveChild removes the first occurrence of node from the category.
// It reports whether anything was removed; a missing node is a no-op.
func RemoveChild(category, node *Node) bool {
	if category == nil || node == nil {
		return false
	}
	idx := slices.Index(category.Children, node)
	if idx < 0 {
		return false
	}
	category.Children = slices.Delete(category.Children, idx, idx+1)
	return true
}

// Category returns the root's category node of the given kind.
func Category(root *Node, kind NodeKind) *Node {
	if root == nil {
		return nil
	}
	for _, c := range root.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Walk visits nodes depth-first, passing the depth of each node.
// Returning false from fn skips the node's children.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	walk(root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Equal compares two trees by label, identifier, kind and child order.
// Select handlers are not compared.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Label != b.Label || a.Identifier != b.Identifier || a.Kind != b.Kind {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Clone deep-copies the tree. Select handlers are shared with the original.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Children = make([]*Node, len(n.Children))
	for i, child := range n.Children {
		c.Children[i] = Clone(child)
	}
	return &c
}
