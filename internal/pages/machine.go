// Package pages holds the per-page controllers behind the creator screens.
//
// Every controller follows the same lifecycle:
//
//	Idle -> Loading -> Ready | LoadError
//	Ready -> Acting -> Ready (navigate) | ActionError
//	ActionError -> Acting
//
// A controller instance belongs to one page visit. Results that arrive after
// Unmount, or after a newer load started, are dropped.
package pages

import (
	"context"
	"errors"
	"sync"

	domainerrors "creatorverse.backend/internal/domain/errors"
)

// State is the lifecycle position of a page controller
type State string

const (
	StateIdle        State = "idle"
	StateLoading     State = "loading"
	StateReady       State = "ready"
	StateLoadError   State = "load_error"
	StateActing      State = "acting"
	StateActionError State = "action_error"
)

// ActionKind names the in-flight user action
type ActionKind string

const (
	ActionNone   ActionKind = ""
	ActionSave   ActionKind = "save"
	ActionDelete ActionKind = "delete"
)

var (
	// ErrNotReady is returned when an action is attempted before the page loaded.
	ErrNotReady = errors.New("page is not ready")
	// ErrUnmounted is returned when the page went away while a call was in flight.
	ErrUnmounted = errors.New("page unmounted")
)

type machine struct {
	mu sync.Mutex

	state       State
	action      ActionKind
	loadErr     string
	actionErr   string
	mounted     bool
	generation  uint64
	ctx         context.Context
	cancel      context.CancelFunc
	loadMessage string
}

func (m *machine) init(loadMessage string) {
	m.state = StateIdle
	m.loadMessage = loadMessage
}

// mount attaches the controller to ctx and returns the instance context.
func (m *machine) mount(ctx context.Context) context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.mounted = true
	return m.ctx
}

// Unmount detaches the controller. Late results are discarded afterwards.
func (m *machine) Unmount() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mounted = false
	if m.cancel != nil {
		m.cancel()
	}
}

// State returns the current lifecycle state
func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LoadError returns the message of a failed load
func (m *machine) LoadError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// ActionError returns the message of the last failed action
func (m *machine) ActionError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actionErr
}

// Saving reports whether a save is in flight
func (m *machine) Saving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateActing && m.action == ActionSave
}

// Deleting reports whether a delete is in flight
func (m *machine) Deleting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateActing && m.action == ActionDelete
}

// ready moves straight to Ready for pages without a load step.
func (m *machine) ready() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mounted {
		m.state = StateReady
	}
}

// load runs fetch and hands its result to apply, unless the page was
// unmounted or reloaded in the meantime.
func (m *machine) load(ctx context.Context, fetch func(context.Context) (func(), error)) error {
	m.mu.Lock()
	if !m.mounted {
		m.mu.Unlock()
		return ErrUnmounted
	}
	m.generation++
	gen := m.generation
	m.state = StateLoading
	m.loadErr = ""
	m.mu.Unlock()

	apply, err := fetch(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.mounted || gen != m.generation {
		return ErrUnmounted
	}
	if err != nil {
		m.state = StateLoadError
		m.loadErr = domainerrors.Message(err, m.loadMessage)
		return err
	}
	if apply != nil {
		apply()
	}
	m.state = StateReady
	return nil
}

// act runs one user action. While an action is in flight every other call
// fails with ErrActionInProgress without reaching the store.
func (m *machine) act(kind ActionKind, fallback string, run func(context.Context) error) error {
	m.mu.Lock()
	switch {
	case !m.mounted:
		m.mu.Unlock()
		return ErrUnmounted
	case m.state == StateActing:
		m.mu.Unlock()
		return domainerrors.Conflict("Request already in progress")
	case m.state != StateReady && m.state != StateActionError:
		m.mu.Unlock()
		return ErrNotReady
	}
	m.state = StateActing
	m.action = kind
	m.actionErr = ""
	ctx := m.ctx
	m.mu.Unlock()

	err := run(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.action = ActionNone
	if !m.mounted {
		return ErrUnmounted
	}
	if err != nil {
		m.state = StateActionError
		m.actionErr = domainerrors.Message(err, fallback)
		return err
	}
	m.state = StateReady
	return nil
}
