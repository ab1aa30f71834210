package tree

// Handlers is the host controller's capability to react to selections.
type Handlers interface {
	OnProjectSelect(n *Node)
	OnSceneGroupSelect(n *Node)
	OnSceneSelect(n *Node)
	OnResourceGroupSelect(n *Node)
	OnResourceSelect(n *Node)
}

// HandlerFuncs adapts plain functions to Handlers. Nil functions are ignored.
type HandlerFuncs struct {
	Project       SelectFunc
	SceneGroup    SelectFunc
	Scene         SelectFunc
	ResourceGroup SelectFunc
	Resource      SelectFunc
}

var _ Handlers = HandlerFuncs{}

func (f HandlerFuncs) OnProjectSelect(n *Node)       { call(f.Project, n) }
func (f HandlerFuncs) OnSceneGroupSelect(n *Node)    { call(f.SceneGroup, n) }
func (f HandlerFuncs) OnSceneSelect(n *Node)         { call(f.Scene, n) }
func (f HandlerFuncs) OnResourceGroupSelect(n *Node) { call(f.ResourceGroup, n) }
func (f HandlerFuncs) OnResourceSelect(n *Node)      { call(f.Resource, n) }

// Missing reports whether h cannot serve selections: a nil interface or a nil
// *HandlerFuncs. Typed nil pointers of other implementations are not detected.
func Missing(h Handlers) bool {
	switch v := h.(type) {
	case nil:
		return true
	case *HandlerFuncs:
		return v == nil
	}
	return false
}

func call(fn SelectFunc, n *Node) {
	if fn != nil {
		fn(n)
	}
}
