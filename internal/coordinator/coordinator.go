// Package coordinator keeps the editor UI's transient state: the project tree,
// toast alerts, breadcrumbs and modal dialogs. Hosts (the web UI, the terminal
// browser) drive it and pull consistent snapshots through SyncTo.
package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/tree"
)

// Dialog templates and controllers understood by the hosts.
const (
	TemplateSaveModified  = "save_modified"
	TemplateOpen          = "open"
	TemplateConfirmRemove = "confirm_remove"

	ControllerYesNo    = "YesNoModal"
	ControllerOpenFile = "OpenFileModal"
)

// Project is the read side of the project document.
type Project interface {
	Snapshot() project.Snapshot
	IsModified() bool
}

// Coordinator owns the tree, alert queue, breadcrumb trail and modal manager.
type Coordinator struct {
	project    Project
	handlers   tree.Handlers
	logger     *slog.Logger
	alerts     *alerts.Queue
	modals     *modal.Manager
	trail      *Trail
	animations bool

	mu   sync.RWMutex
	root *tree.Node

	// editMu serializes project edits with their tree updates and reloads.
	editMu sync.Mutex
}

type options struct {
	logger       *slog.Logger
	alertDefault time.Duration
	alertOpts    []alerts.Option
	presenter    modal.Presenter
	animations   bool
	onChange     func()
	trail        *Trail
}

// Option configures a Coordinator.
type Option func(*options)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAlertDefault sets the duration alerts get when none is given.
func WithAlertDefault(d time.Duration) Option {
	return func(o *options) { o.alertDefault = d }
}

// WithAlertOptions passes extra options to the alert queue.
func WithAlertOptions(opts ...alerts.Option) Option {
	return func(o *options) { o.alertOpts = append(o.alertOpts, opts...) }
}

// WithPresenter sets the host mechanism that shows dialogs.
func WithPresenter(p modal.Presenter) Option {
	return func(o *options) { o.presenter = p }
}

// WithModalAnimations controls the Animate flag on dialogs built by the coordinator.
func WithModalAnimations(enabled bool) Option {
	return func(o *options) { o.animations = enabled }
}

// WithOnChange registers a callback for state changes the host did not cause,
// currently alert expiry.
func WithOnChange(f func()) Option {
	return func(o *options) { o.onChange = f }
}

// WithTrail shares a breadcrumb trail the host controller already holds.
func WithTrail(t *Trail) Option {
	return func(o *options) { o.trail = t }
}

// New creates a coordinator and builds the initial tree. The host controller
// handlers are required up front.
func New(p Project, h tree.Handlers, opts ...Option) (*Coordinator, error) {
	if p == nil {
		return nil, ErrNoProject
	}
	if tree.Missing(h) {
		return nil, ErrNoHostController
	}

	o := options{
		alertDefault: alerts.DefaultDuration,
		animations:   true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.trail == nil {
		o.trail = NewTrail()
	}

	alertOpts := append([]alerts.Option{alerts.WithDefaultDuration(o.alertDefault)}, o.alertOpts...)
	if o.onChange != nil {
		alertOpts = append(alertOpts, alerts.WithOnChange(o.onChange))
	}

	c := &Coordinator{
		project:    p,
		handlers:   h,
		logger:     o.logger,
		alerts:     alerts.New(alertOpts...),
		modals:     modal.NewManager(o.presenter),
		trail:      o.trail,
		animations: o.animations,
	}

	if err := c.Refresh(); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh discards the current tree and regenerates it from the project.
func (c *Coordinator) Refresh() error {
	snap := c.project.Snapshot()
	c.logger.Debug("generating tree data",
		"project", snap.Name,
		"scenes", len(snap.Scenes),
		"resources", len(snap.Resources),
	)

	root, err := tree.Generate(snap, c.handlers)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.root = root
	c.mu.Unlock()
	return nil
}

// Edit runs fn under the edit lock. Hosts that can change the project from
// more than one goroutine pair each project mutation with its tree update
// inside Edit, and run reload-then-Refresh inside Edit as well, so a full
// rebuild never interleaves with an incremental change. fn must not call Edit
// or wait on a dialog.
func (c *Coordinator) Edit(fn func() error) error {
	c.editMu.Lock()
	defer c.editMu.Unlock()
	return fn()
}

// Tree returns a copy of the current tree.
func (c *Coordinator) Tree() *tree.Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return tree.Clone(c.root)
}

// AddScene appends a leaf for item under "Scenes".
func (c *Coordinator) AddScene(item project.Item) {
	c.addLeaf(tree.KindSceneGroup, tree.NewScene(item, c.handlers))
}

// AddResource appends a leaf for item under "Resources".
func (c *Coordinator) AddResource(item project.Item) {
	c.addLeaf(tree.KindResourceGroup, tree.NewResource(item, c.handlers))
}

// RemoveSceneByIdentifier removes the scene leaf with id, if present.
func (c *Coordinator) RemoveSceneByIdentifier(id string) bool {
	return c.removeLeaf(tree.KindSceneGroup, id)
}

// RemoveResourceByIdentifier removes the resource leaf with id, if present.
func (c *Coordinator) RemoveResourceByIdentifier(id string) bool {
	return c.removeLeaf(tree.KindResourceGroup, id)
}

// FindScene returns a copy of the scene leaf with id.
func (c *Coordinator) FindScene(id string) (tree.Node, bool) {
	return c.findLeaf(tree.KindSceneGroup, id)
}

// FindResource returns a copy of the resource leaf with id.
func (c *Coordinator) FindResource(id string) (tree.Node, bool) {
	return c.findLeaf(tree.KindResourceGroup, id)
}

// Select invokes the select handler of the node of kind. Leaves are addressed
// by id; the root and categories ignore it.
func (c *Coordinator) Select(kind tree.NodeKind, id string) error {
	c.mu.RLock()
	var n *tree.Node
	switch kind {
	case tree.KindProject:
		n = c.root
	case tree.KindSceneGroup, tree.KindResourceGroup:
		n = tree.Category(c.root, kind)
	case tree.KindScene:
		if cat := tree.Category(c.root, tree.KindSceneGroup); cat != nil {
			n = tree.FindByIdentifier(cat.Children, id)
		}
	case tree.KindResource:
		if cat := tree.Category(c.root, tree.KindResourceGroup); cat != nil {
			n = tree.FindByIdentifier(cat.Children, id)
		}
	}
	c.mu.RUnlock()

	if n == nil {
		c.logger.Warn("select on missing node", "kind", kind, "id", id)
		return ErrNodeNotFound
	}
	n.Select()
	return nil
}

// Alerts returns the alert queue.
func (c *Coordinator) Alerts() *alerts.Queue {
	return c.alerts
}

// AddAlert appends a toast alert.
func (c *Coordinator) AddAlert(text string, kind alerts.Kind, duration ...time.Duration) alerts.Entry {
	return c.alerts.Add(text, kind, duration...)
}

// CloseAlert removes the alert at index. Bad indexes are logged and returned.
func (c *Coordinator) CloseAlert(index int) error {
	if err := c.alerts.Close(index); err != nil {
		c.logger.Warn("close alert rejected", "index", index, "error", err)
		return err
	}
	return nil
}

// SetBreadcrumbs replaces the breadcrumb trail.
func (c *Coordinator) SetBreadcrumbs(labels []string) {
	c.logger.Debug("setting breadcrumbs", "breadcrumbs", labels)
	c.trail.Set(labels)
}

// Breadcrumbs returns a copy of the breadcrumb trail.
func (c *Coordinator) Breadcrumbs() []string {
	return c.trail.Get()
}

// Modals returns the dialog manager.
func (c *Coordinator) Modals() *modal.Manager {
	return c.modals
}

// NewRequest builds a dialog request with the configured animation setting.
func (c *Coordinator) NewRequest(template, controller string, params map[string]string) modal.Request {
	return modal.Request{
		Template:   template,
		Controller: controller,
		Animate:    c.animations,
		Params:     params,
	}
}

// ConfirmSaveModified asks whether the modified project should be saved.
func (c *Coordinator) ConfirmSaveModified(ctx context.Context) (modal.Outcome, error) {
	return c.modals.RequestConfirmation(ctx, c.NewRequest(TemplateSaveModified, ControllerYesNo, nil))
}

// OpenProject asks the user to pick a project file.
func (c *Coordinator) OpenProject(ctx context.Context) (string, bool, error) {
	return c.modals.RequestFileOpen(ctx, c.NewRequest(TemplateOpen, ControllerOpenFile, nil))
}

// Close stops pending alert timers.
func (c *Coordinator) Close() {
	c.alerts.Stop()
}

func (c *Coordinator) addLeaf(kind tree.NodeKind, n *tree.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tree.AddChild(tree.Category(c.root, kind), n)
	c.logger.Debug("added tree node", "group", kind, "id", n.Identifier, "label", n.Label)
}

func (c *Coordinator) removeLeaf(kind tree.NodeKind, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat := tree.Category(c.root, kind)
	if cat == nil {
		return false
	}
	n := tree.FindByIdentifier(cat.Children, id)
	if n == nil {
		c.logger.Debug("remove skipped, node not found", "group", kind, "id", id)
		return false
	}
	return tree.RemoveChild(cat, n)
}

func (c *Coordinator) findLeaf(kind tree.NodeKind, id string) (tree.Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cat := tree.Category(c.root, kind)
	if cat == nil {
		return tree.Node{}, false
	}
	n := tree.FindByIdentifier(cat.Children, id)
	if n == nil {
		return tree.Node{}, false
	}
	return *n, true
}
