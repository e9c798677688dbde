package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
	"github.com/dmitrijs2005/fileshare/internal/client/store"
	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/logging"
)

// Navigator moves the UI to its login entry point. It is called by
// AcknowledgeExpiration once the session has been wiped.
type Navigator interface {
	ToLogin(ctx context.Context) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context) error

func (f NavigatorFunc) ToLogin(ctx context.Context) error { return f(ctx) }

// Manager is the authoritative, in-memory session plus the expiry gate.
// All methods are safe for concurrent use.
type Manager struct {
	store  store.Store
	logger logging.Logger

	mu          sync.Mutex
	nav         Navigator
	current     Session
	initialized bool
	gateVisible bool
	epoch       uint64
	onChange    []func(Session)
	onGate      []func(bool)
}

// NewManager builds a Manager over st. Call Initialize before issuing any
// authenticated request.
func NewManager(st store.Store, logger logging.Logger) *Manager {
	return &Manager{store: st, logger: logger}
}

// SetNavigator installs the login redirect used after the gate is
// acknowledged. A nil navigator disables the redirect.
func (m *Manager) SetNavigator(nav Navigator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nav = nav
}

// OnChange registers fn to be called with the new snapshot after every
// committed transition.
func (m *Manager) OnChange(fn func(Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// OnGate registers fn to be called whenever the gate is raised or lowered.
func (m *Manager) OnGate(fn func(visible bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onGate = append(m.onGate, fn)
}

// Initialize loads the persisted record once. It does not contact the
// backend and does not check whether the stored token is still valid.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return common.ErrAlreadyInitialized
	}

	rec, err := m.store.Load(ctx)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("load session: %w", err)
	}

	m.current = Reduce(m.current, InitFromStorageAction{Record: rec})
	m.initialized = true
	snap, listeners := m.current.clone(), m.onChange
	m.mu.Unlock()

	m.logger.Info(ctx, "session initialized", "state", stateOf(snap, true).String(), "user", snap.Username())
	notify(listeners, snap)
	return nil
}

// Login persists the credentials and then switches to the authenticated
// state. The store write and the transition happen under one lock, so no
// reader sees one without the other.
func (m *Manager) Login(ctx context.Context, token string, user *models.User, mustChangePassword bool) error {
	if token == "" {
		return common.ErrEmptyToken
	}

	act := LoginAction{Token: token, User: user, MustChangePassword: mustChangePassword}

	m.mu.Lock()
	next := Reduce(m.current, act)
	if err := m.store.Save(ctx, next.Record()); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("persist session: %w", err)
	}
	m.current = next
	m.initialized = true
	m.epoch++
	snap, listeners := m.current.clone(), m.onChange
	m.mu.Unlock()

	m.logger.Info(ctx, "logged in", "user", snap.Username(), "must_change_password", snap.MustChangePassword)
	notify(listeners, snap)
	return nil
}

// Logout clears the persisted record and resets the session. Calling it
// without a session is harmless and yields the same state.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	user, err := m.logoutLocked(ctx)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	snap, listeners := m.current.clone(), m.onChange
	m.mu.Unlock()

	if user != "" {
		m.logger.Info(ctx, "logged out", "user", user)
	}
	notify(listeners, snap)
	return nil
}

func (m *Manager) logoutLocked(ctx context.Context) (string, error) {
	if err := m.store.Clear(ctx); err != nil {
		return "", fmt.Errorf("clear session: %w", err)
	}
	user := m.current.Username()
	m.current = Reduce(m.current, LogoutAction{})
	m.initialized = true
	m.epoch++
	return user, nil
}

// TriggerExpiration raises the expiry gate. Credentials are kept until the
// gate is acknowledged so the stale identity can still be shown. A second
// call while the gate is up changes nothing; the result reports whether
// this call raised it.
func (m *Manager) TriggerExpiration() bool {
	m.mu.Lock()
	if m.gateVisible {
		m.mu.Unlock()
		return false
	}
	m.gateVisible = true
	m.epoch++
	user, listeners := m.current.Username(), m.onGate
	m.mu.Unlock()

	m.logger.Warn(context.Background(), "session expired", "user", user)
	for _, fn := range listeners {
		fn(true)
	}
	return true
}

// AcknowledgeExpiration lowers the gate, logs out and then asks the
// navigator to show the login entry point. It does nothing when the gate is
// not up. If the logout cannot be persisted the gate stays up.
func (m *Manager) AcknowledgeExpiration(ctx context.Context) error {
	m.mu.Lock()
	if !m.gateVisible {
		m.mu.Unlock()
		return nil
	}
	m.gateVisible = false
	user, err := m.logoutLocked(ctx)
	if err != nil {
		m.gateVisible = true
		m.mu.Unlock()
		return err
	}
	snap, nav := m.current.clone(), m.nav
	changeListeners, gateListeners := m.onChange, m.onGate
	m.mu.Unlock()

	m.logger.Info(ctx, "session expiry acknowledged", "user", user)
	for _, fn := range gateListeners {
		fn(false)
	}
	notify(changeListeners, snap)

	if nav == nil {
		return nil
	}
	return nav.ToLogin(ctx)
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.clone()
}

// State reports the lifecycle position.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return stateOf(m.current, m.initialized)
}

// GateVisible reports whether the expiry gate is up.
func (m *Manager) GateVisible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gateVisible
}

// Epoch changes on every login, logout and gate raise.
func (m *Manager) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// IsStale reports whether the session changed hands or expired since epoch
// was read.
func (m *Manager) IsStale(epoch uint64) bool {
	return m.Epoch() != epoch
}

// ClearMustChangePassword drops the must-change flag of the session that
// was current at epoch. It reports false and changes nothing if that
// session is gone.
func (m *Manager) ClearMustChangePassword(ctx context.Context, epoch uint64) (bool, error) {
	m.mu.Lock()
	if m.epoch != epoch || !m.current.IsAuthenticated() {
		m.mu.Unlock()
		return false, nil
	}
	if !m.current.MustChangePassword {
		m.mu.Unlock()
		return true, nil
	}

	next := Reduce(m.current, LoginAction{Token: m.current.Token, User: m.current.User, MustChangePassword: false})
	if err := m.store.Save(ctx, next.Record()); err != nil {
		m.mu.Unlock()
		return false, fmt.Errorf("persist session: %w", err)
	}
	m.current = next
	snap, listeners := m.current.clone(), m.onChange
	m.mu.Unlock()

	notify(listeners, snap)
	return true, nil
}

// Token returns the current credential, or common.ErrNotAuthenticated.
func (m *Manager) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current.IsAuthenticated() {
		return "", common.ErrNotAuthenticated
	}
	return m.current.Token, nil
}

func stateOf(s Session, initialized bool) State {
	switch {
	case !initialized:
		return StateUninitialized
	case s.IsAuthenticated():
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}

func notify(listeners []func(Session), snap Session) {
	for _, fn := range listeners {
		fn(snap.clone())
	}
}
