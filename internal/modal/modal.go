// Package modal runs the editor's dialog round-trips. A request opens a single
// dialog through the host's Presenter and waits until the host reports what the
// user did; every request resolves exactly once.
package modal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrDialogPending is returned when a dialog is requested while another is open.
	ErrDialogPending = errors.New("modal: another dialog is pending")
	// ErrNotPending is returned when resolving a dialog that is not open.
	ErrNotPending = errors.New("modal: dialog is not pending")
	// ErrInvalidAction is returned when an action does not apply to the dialog kind.
	ErrInvalidAction = errors.New("modal: action not valid for dialog")
	// ErrNoPresenter is returned when no host mechanism can show dialogs.
	ErrNoPresenter = errors.New("modal: no presenter registered")
)

// Request describes a dialog. Template and Controller are opaque to this
// package; the host resolves them. Params carries display values for the template.
type Request struct {
	Template   string
	Controller string
	Animate    bool
	Params     map[string]string
}

// Kind distinguishes confirmation dialogs from file pickers.
type Kind int

// Dialog kinds.
const (
	KindConfirm Kind = iota
	KindFileOpen
)

func (k Kind) String() string {
	if k == KindFileOpen {
		return "file-open"
	}
	return "confirm"
}

// State is the lifecycle position of a dialog.
type State int

// Dialog states.
const (
	StateIdle State = iota
	StatePending
	StateResolved
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// Outcome is the result of a confirmation dialog.
type Outcome int

// Confirmation outcomes.
const (
	OutcomeDeclined Outcome = iota
	OutcomeConfirmed
)

func (o Outcome) String() string {
	if o == OutcomeConfirmed {
		return "confirmed"
	}
	return "declined"
}

// Action is what the user did with an open dialog.
type Action int

// User actions. Dismiss covers clicking outside, pressing escape and closing.
const (
	ActionConfirm Action = iota
	ActionDecline
	ActionDismiss
	ActionSelect
)

func (a Action) String() string {
	switch a {
	case ActionConfirm:
		return "confirm"
	case ActionDecline:
		return "decline"
	case ActionDismiss:
		return "dismiss"
	case ActionSelect:
		return "select"
	default:
		return "unknown"
	}
}

// ParseAction maps the names used by hosts ("confirm", "decline", "dismiss", "select").
func ParseAction(s string) (Action, error) {
	switch s {
	case "confirm", "yes":
		return ActionConfirm, nil
	case "decline", "no":
		return ActionDecline, nil
	case "dismiss", "close", "escape":
		return ActionDismiss, nil
	case "select":
		return ActionSelect, nil
	default:
		return 0, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, s)
	}
}

// Dialog is the view of an open dialog handed to the Presenter.
type Dialog struct {
	ID       string
	Kind     Kind
	Request  Request
	OpenedAt time.Time
}

// Presenter is the host mechanism that puts a dialog in front of the user.
// An error means the dialog could not be shown.
type Presenter interface {
	Present(ctx context.Context, d Dialog) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ctx context.Context, d Dialog) error

// Present calls f.
func (f PresenterFunc) Present(ctx context.Context, d Dialog) error {
	return f(ctx, d)
}

type resolution struct {
	action  Action
	payload string
}

type machine struct {
	dialog Dialog
	state  State
	done   chan resolution
}

// Manager owns the single pending dialog.
type Manager struct {
	mu        sync.Mutex
	presenter Presenter
	current   *machine
	now       func() time.Time
}

// NewManager creates a manager that shows dialogs through p.
func NewManager(p Presenter) *Manager {
	return &Manager{presenter: p, now: time.Now}
}

// Pending returns the open dialog, if any.
func (m *Manager) Pending() (Dialog, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Dialog{}, false
	}
	return m.current.dialog, true
}

// RequestConfirmation shows a yes/no dialog and blocks until the user answers.
// Anything but an explicit confirm, including context cancellation, resolves
// to OutcomeDeclined. Errors are reserved for failures to show the dialog.
func (m *Manager) RequestConfirmation(ctx context.Context, req Request) (Outcome, error) {
	mc, err := m.open(ctx, KindConfirm, req)
	if err != nil {
		return OutcomeDeclined, err
	}

	if r := m.wait(ctx, mc); r.action == ActionConfirm {
		return OutcomeConfirmed, nil
	}
	return OutcomeDeclined, nil
}

// RequestFileOpen shows a file picker and blocks until the user selects or
// backs out. Backing out resolves to ("", false, nil); errors are reserved for
// failures to show the dialog.
func (m *Manager) RequestFileOpen(ctx context.Context, req Request) (string, bool, error) {
	mc, err := m.open(ctx, KindFileOpen, req)
	if err != nil {
		return "", false, err
	}

	if r := m.wait(ctx, mc); r.action == ActionSelect {
		return r.payload, true, nil
	}
	return "", false, nil
}

// ConfirmAsync runs RequestConfirmation on its own goroutine and calls exactly
// one of the callbacks. Nil callbacks are skipped.
func (m *Manager) ConfirmAsync(ctx context.Context, req Request, onYes, onNo func(), onErr func(error)) {
	go func() {
		outcome, err := m.RequestConfirmation(ctx, req)
		switch {
		case err != nil:
			if onErr != nil {
				onErr(err)
			}
		case outcome == OutcomeConfirmed:
			if onYes != nil {
				onYes()
			}
		default:
			if onNo != nil {
				onNo()
			}
		}
	}()
}

// Resolve reports the user's action on the dialog with id. Each dialog accepts
// exactly one resolution; later calls return ErrNotPending.
func (m *Manager) Resolve(id string, action Action, payload string) error {
	m.mu.Lock()
	mc := m.current
	m.mu.Unlock()

	if mc == nil || mc.dialog.ID != id {
		return fmt.Errorf("%w: %s", ErrNotPending, id)
	}
	if !validFor(mc.dialog.Kind, action) {
		return fmt.Errorf("%w: %s on %s dialog", ErrInvalidAction, action, mc.dialog.Kind)
	}
	return m.resolve(mc, resolution{action: action, payload: payload})
}

func validFor(k Kind, a Action) bool {
	switch a {
	case ActionDecline, ActionDismiss:
		return true
	case ActionConfirm:
		return k == KindConfirm
	case ActionSelect:
		return k == KindFileOpen
	default:
		return false
	}
}

func (m *Manager) open(ctx context.Context, kind Kind, req Request) (*machine, error) {
	if m.presenter == nil {
		return nil, ErrNoPresenter
	}

	m.mu.Lock()
	if m.current != nil {
		m.mu.Unlock()
		return nil, ErrDialogPending
	}
	mc := &machine{
		dialog: Dialog{
			ID:       uuid.New().String(),
			Kind:     kind,
			Request:  req,
			OpenedAt: m.now(),
		},
		state: StatePending,
		done:  make(chan resolution, 1),
	}
	m.current = mc
	m.mu.Unlock()

	if err := m.presenter.Present(ctx, mc.dialog); err != nil {
		m.discard(mc)
		return nil, fmt.Errorf("present dialog: %w", err)
	}
	return mc, nil
}

func (m *Manager) wait(ctx context.Context, mc *machine) resolution {
	select {
	case r := <-mc.done:
		return r
	case <-ctx.Done():
		// Lost races are fine: whoever resolved first has filled done.
		_ = m.resolve(mc, resolution{action: ActionDismiss})
		return <-mc.done
	}
}

func (m *Manager) resolve(mc *machine, r resolution) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mc.state != StatePending {
		return fmt.Errorf("%w: %s", ErrNotPending, mc.dialog.ID)
	}
	mc.state = StateResolved
	if m.current == mc {
		m.current = nil
	}
	mc.done <- r
	return nil
}

// discard drops a dialog that could not be shown without resolving it.
func (m *Manager) discard(mc *machine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc.state = StateResolved
	if m.current == mc {
		m.current = nil
	}
}
