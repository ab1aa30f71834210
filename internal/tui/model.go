package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/octronic/dreamtool/internal/alerts"
	"github.com/octronic/dreamtool/internal/coordinator"
	"github.com/octronic/dreamtool/internal/modal"
	"github.com/octronic/dreamtool/internal/project"
	"github.com/octronic/dreamtool/internal/tree"
)

// row is one visible line of the flattened tree.
type row struct {
	node  *tree.Node
	depth int
}

// removeResultMsg carries the answer to a remove confirmation.
type removeResultMsg struct {
	node    tree.Node
	outcome modal.Outcome
	err     error
}

// quitResultMsg carries the answer to the save-before-quit prompt.
type quitResultMsg struct {
	outcome modal.Outcome
	err     error
}

// Model is the bubbletea model of the project browser.
type Model struct {
	ctx     context.Context
	host    *Host
	coord   *coordinator.Coordinator
	project *project.Project
	logger  *slog.Logger
	keys    KeyMap
	help    help.Model

	view     coordinator.HostView
	rows     []row
	cursor   int
	dialog   *modal.Dialog
	quitting bool
	width    int
}

// New creates the browser model. ctx bounds dialog waits.
func New(ctx context.Context, p *project.Project, logger *slog.Logger, opts ...coordinator.Option) (Model, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := NewHost()
	coord, err := h.NewCoordinator(p, logger, opts...)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:     ctx,
		host:    h,
		coord:   coord,
		project: p,
		logger:  logger,
		keys:    DefaultKeys,
		help:    help.New(),
	}
	m.sync()
	return m, nil
}

// Coordinator returns the coordinator the model drives.
func (m Model) Coordinator() *coordinator.Coordinator {
	return m.coord
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.host.wait()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case changedMsg:
		m.sync()
		return m, m.host.wait()

	case dialogMsg:
		d := msg.dialog
		m.dialog = &d
		return m, m.host.wait()

	case removeResultMsg:
		m.clearDialog(msg.err)
		m.applyRemove(msg)
		m.sync()
		return m, nil

	case quitResultMsg:
		m.clearDialog(msg.err)
		return m.finishQuit(msg)

	case tea.KeyMsg:
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.project.IsModified() {
			return m, m.askSaveBeforeQuit()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if n := m.current(); n != nil {
			if err := m.coord.Select(n.Kind, n.Identifier); err != nil {
				m.logger.Warn("select failed", "error", err)
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if n := m.current(); n != nil && n.IsLeaf() {
			return m, m.askRemove(*n)
		}

	case key.Matches(msg, m.keys.CloseAlert):
		if m.coord.Alerts().Len() > 0 {
			_ = m.coord.CloseAlert(0)
		}

	case key.Matches(msg, m.keys.Save):
		m.save()
	}

	m.sync()
	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var action modal.Action
	switch {
	case key.Matches(msg, m.keys.Confirm):
		action = modal.ActionConfirm
	case key.Matches(msg, m.keys.Decline):
		action = modal.ActionDecline
	case key.Matches(msg, m.keys.Dismiss):
		action = modal.ActionDismiss
	default:
		return m, nil
	}

	if err := m.coord.Modals().Resolve(m.dialog.ID, action, ""); err != nil {
		m.logger.Debug("dialog resolution rejected", "error", err)
	}
	m.dialog = nil
	return m, nil
}

// clearDialog drops the shown dialog once its request finished. A request
// rejected because another dialog is pending leaves that dialog in place.
func (m *Model) clearDialog(err error) {
	if errors.Is(err, modal.ErrDialogPending) {
		return
	}
	m.dialog = nil
}

// askRemove runs the blocking confirmation off the update loop.
func (m Model) askRemove(n tree.Node) tea.Cmd {
	req := m.coord.NewRequest(coordinator.TemplateConfirmRemove, coordinator.ControllerYesNo, map[string]string{
		"kind": n.Kind.String(),
		"name": n.Label,
		"id":   n.Identifier,
	})
	return func() tea.Msg {
		outcome, err := m.coord.Modals().RequestConfirmation(m.ctx, req)
		return removeResultMsg{node: n, outcome: outcome, err: err}
	}
}

func (m Model) askSaveBeforeQuit() tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.coord.ConfirmSaveModified(m.ctx)
		return quitResultMsg{outcome: outcome, err: err}
	}
}

func (m *Model) applyRemove(msg removeResultMsg) {
	if msg.err != nil {
		m.coord.AddAlert(msg.err.Error(), alerts.Error)
		return
	}
	if msg.outcome != modal.OutcomeConfirmed {
		return
	}

	var err error
	switch msg.node.Kind {
	case tree.KindScene:
		err = m.project.RemoveScene(msg.node.Identifier)
		m.coord.RemoveSceneByIdentifier(msg.node.Identifier)
	case tree.KindResource:
		err = m.project.RemoveResource(msg.node.Identifier)
		m.coord.RemoveResourceByIdentifier(msg.node.Identifier)
	}
	if err != nil {
		m.logger.Warn("remove confirmed for missing item", "id", msg.node.Identifier, "error", err)
	}
	m.coord.AddAlert(fmt.Sprintf("Removed %s %s", msg.node.Kind, msg.node.Label), alerts.Success)
}

func (m Model) finishQuit(msg quitResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.coord.AddAlert(msg.err.Error(), alerts.Error)
		m.sync()
		return m, nil
	}
	if msg.outcome == modal.OutcomeConfirmed && !m.save() {
		m.sync()
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// save writes the project, reporting the result as an alert.
func (m *Model) save() bool {
	if err := m.project.Save(); err != nil {
		m.coord.AddAlert("Save failed: "+err.Error(), alerts.Error)
		return false
	}
	m.coord.AddAlert("Project saved", alerts.Success)
	return true
}

// sync pulls a fresh host view and rebuilds the visible rows.
func (m *Model) sync() {
	if err := m.coord.SyncTo(&m.view); err != nil {
		m.logger.Error("sync failed", "error", err)
		return
	}

	rows := make([]row, 0, len(m.rows))
	for _, root := range m.view.TreeData {
		tree.Walk(root, func(n *tree.Node, depth int) bool {
			rows = append(rows, row{node: n, depth: depth})
			return true
		})
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m Model) current() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderBreadcrumbs())
	b.WriteString("\n\n")

	for i, r := range m.rows {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		label := r.node.Label
		if !r.node.IsLeaf() {
			label = groupStyle.Render(label)
		}
		if r.node.Kind == tree.KindProject && m.view.IsProjectModified {
			label += modifiedStyle.Render(" *")
		}
		b.WriteString(prefix + strings.Repeat("  ", r.depth) + label + "\n")
	}

	if len(m.view.AlertList) > 0 {
		b.WriteString("\n")
		for _, a := range m.view.AlertList {
			style, ok := alertStyles[a.Kind]
			if !ok {
				style = alertStyles[alerts.Info]
			}
			b.WriteString(style.Render(a.Kind.Title()+": ") + a.Text + "\n")
		}
	}

	if m.dialog != nil {
		b.WriteString("\n")
		b.WriteString(dialogStyle.Render(dialogText(m.dialog.Request)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.DialogHelp())))
	} else {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderBreadcrumbs() string {
	crumbs := m.view.Breadcrumbs
	if len(crumbs) == 0 {
		return crumbStyle.Render("(nothing selected)")
	}
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			parts[i] = crumbActiveStyle.Render(c)
		} else {
			parts[i] = crumbStyle.Render(c)
		}
	}
	return strings.Join(parts, crumbStyle.Render(" › "))
}

func dialogText(r modal.Request) string {
	switch r.Template {
	case coordinator.TemplateSaveModified:
		return "The project has unsaved changes. Save before quitting?"
	case coordinator.TemplateConfirmRemove:
		return fmt.Sprintf("Remove %s %q?", r.Params["kind"], r.Params["name"])
	default:
		return "Are you sure?"
	}
}
