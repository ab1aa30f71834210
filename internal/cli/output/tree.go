package output

import (
	"github.com/jedib0t/go-pretty/v6/list"

	"github.com/octronic/dreamtool/internal/tree"
)

// TreeNode is the JSON form of a tree node.
type TreeNode struct {
	Label      string     `json:"label"`
	Kind       string     `json:"kind"`
	Identifier string     `json:"id,omitempty"`
	Children   []TreeNode `json:"children,omitempty"`
}

// NewTreeNode converts a display tree to its JSON form.
func NewTreeNode(n *tree.Node) TreeNode {
	out := TreeNode{
		Label:      n.Label,
		Kind:       n.Kind.String(),
		Identifier: n.Identifier,
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, NewTreeNode(c))
	}
	return out
}

// Tree writes root in the effective mode. Text and markdown share the same
// go-pretty list; identifiers are shown when showIDs is set.
func (r *Renderer) Tree(root *tree.Node, showIDs bool) error {
	if root == nil {
		return nil
	}
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(NewTreeNode(root))
	}

	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedRounded)
	r.appendNode(l, root, showIDs)

	if r.EffectiveMode() == ModeMarkdown {
		r.Println(l.RenderMarkdown())
		return nil
	}
	r.Println(l.Render())
	return nil
}

func (r *Renderer) appendNode(l list.Writer, n *tree.Node, showIDs bool) {
	l.AppendItem(r.nodeLabel(n, showIDs))
	if len(n.Children) == 0 {
		return
	}
	l.Indent()
	for _, c := range n.Children {
		r.appendNode(l, c, showIDs)
	}
	l.UnIndent()
}

func (r *Renderer) nodeLabel(n *tree.Node, showIDs bool) string {
	if !n.IsLeaf() {
		if r.EffectiveMode() == ModeMarkdown {
			return "**" + n.Label + "**"
		}
		return r.styles.Group.Render(n.Label)
	}
	if !showIDs {
		return r.styles.Leaf.Render(n.Label)
	}
	if r.EffectiveMode() == ModeMarkdown {
		return n.Label + " `" + n.Identifier + "`"
	}
	return r.styles.Leaf.Render(n.Label) + " " + r.Muted(n.Identifier)
}
