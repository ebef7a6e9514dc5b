// Package session tracks which operator is signed in.
//
// A session holds a snapshot of the operator taken at login. Unless
// revalidation is enabled the snapshot is trusted until logout, even if the
// operator record is later edited, disabled or deleted.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"visitor-pass-console/internal/collection"
	"visitor-pass-console/internal/model"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

type Manager struct {
	operators  *collection.Operators
	store      Store
	revalidate bool
	logger     *slog.Logger

	mu      sync.Mutex
	current *model.Operator
}

type Option func(*Manager)

// WithRevalidation re-reads the operator record on every access and ends
// the session once it is gone or inactive.
func WithRevalidation(enabled bool) Option {
	return func(m *Manager) { m.revalidate = enabled }
}

// NewManager restores a previously saved session from st.
func NewManager(ctx context.Context, operators *collection.Operators, st Store, opts ...Option) *Manager {
	m := &Manager{
		operators: operators,
		store:     st,
		logger:    slog.With("component", "session"),
	}
	for _, opt := range opts {
		opt(m)
	}

	if op := st.Load(ctx); op != nil {
		m.current = op
		m.logger.Debug("Session restored", "username", op.Username)
	}
	return m
}

// Login signs in the active operator with matching credentials.
func (m *Manager) Login(ctx context.Context, username, password string) (model.Operator, error) {
	op, ok := m.operators.Active(ctx, username, password)
	if !ok {
		m.logger.Info("Login failed", "username", username)
		return model.Operator{}, ErrInvalidCredentials
	}

	snapshot := op.Redacted()

	m.mu.Lock()
	m.current = &snapshot
	m.mu.Unlock()

	if err := m.store.Save(ctx, snapshot); err != nil {
		m.logger.Warn("Session not persisted", "username", username, "error", err)
	}
	m.logger.Info("Login succeeded", "username", username, "role", snapshot.Role)
	return snapshot, nil
}

// Logout always ends the session.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("Saved session not cleared", "error", err)
	}
}

// Current returns the signed-in operator snapshot.
func (m *Manager) Current(ctx context.Context) (model.Operator, bool) {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()

	if current == nil {
		return model.Operator{}, false
	}
	if !m.revalidate {
		return *current, true
	}

	op, ok := m.operators.Find(ctx, current.ID)
	if !ok || op.Status != model.StatusActive {
		m.logger.Info("Ending session of removed or inactive operator", "username", current.Username)
		m.Logout(ctx)
		return model.Operator{}, false
	}

	snapshot := op.Redacted()
	m.mu.Lock()
	m.current = &snapshot
	m.mu.Unlock()
	return snapshot, true
}

func (m *Manager) State(ctx context.Context) State {
	if _, ok := m.Current(ctx); ok {
		return Authenticated
	}
	return Anonymous
}
