package session

import (
	"context"
	"sync"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/client"
	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// State is the session lifecycle phase. Views must treat Pending states as
// "not yet determined", never as anonymous, so auth-gated actions do not
// misfire before the restore settles.
type State int

const (
	// StateInitializing means no restore has been attempted yet.
	StateInitializing State = iota
	// StateRestoring means a cached user is shown optimistically while the
	// token is validated in the background.
	StateRestoring
	// StateAuthenticated means the backend confirmed the session.
	StateAuthenticated
	// StateAnonymous means there is no session.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Manager is the single source of truth for "who is the current user".
// It owns the transitions between the lifecycle states and is safe for use
// from concurrent Bubbletea commands.
type Manager struct {
	mu    sync.Mutex
	store Store
	api   *client.Client
	state State
	user  *domain.User
}

// NewManager creates a manager in StateInitializing. Wire HandleUnauthorized
// into the client's OnUnauthorized callback at construction time.
func NewManager(store Store, api *client.Client) *Manager {
	return &Manager{store: store, api: api, state: StateInitializing}
}

// Restore adopts the cached session, if any, without touching the network.
// With both token and user cached the manager enters StateRestoring and the
// caller should follow up with Validate; otherwise it settles on
// StateAnonymous immediately.
func (m *Manager) Restore() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateInitializing {
		return m.state
	}
	user, ok := m.store.User()
	if m.store.Token() != "" && ok {
		m.user = user
		m.state = StateRestoring
	} else {
		m.state = StateAnonymous
	}
	return m.state
}

// Validate confirms the restored token with the backend. Any failure,
// including non-401 errors, invalidates the session: the store is cleared
// and the manager drops to anonymous. The lock is not held across the
// network call, so the result only applies if the manager is still
// restoring: a logout or unauthorized teardown that landed mid-flight wins
// over a stale validation.
func (m *Manager) Validate(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateRestoring {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	err := m.api.ValidateToken(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRestoring {
		return nil
	}
	if err != nil {
		m.store.Clear() //nolint:errcheck // teardown is best-effort
		m.user = nil
		m.state = StateAnonymous
		return err
	}
	m.state = StateAuthenticated
	return nil
}

// Login authenticates and adopts the returned user. The client has already
// persisted token and user by the time this returns. Errors propagate
// untouched; mapping status codes to text is the caller's business.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.adopt(user)
	return user, nil
}

// Register creates an account and adopts the returned user, same contract
// shape as Login.
func (m *Manager) Register(ctx context.Context, req client.RegisterRequest) (*domain.User, error) {
	user, err := m.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	m.adopt(user)
	return user, nil
}

func (m *Manager) adopt(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	m.state = StateAuthenticated
}

// SetUser replaces the current user snapshot after a profile update.
func (m *Manager) SetUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticated || m.state == StateRestoring {
		m.user = user
	}
}

// Logout ends the session unconditionally: even when the backend call
// fails, the local session is gone by the time this returns.
func (m *Manager) Logout(ctx context.Context) {
	m.api.Logout(ctx) //nolint:errcheck // best-effort revoke; store is cleared regardless
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.state = StateAnonymous
}

// HandleUnauthorized is the subscriber for the client's unauthorized
// teardown. The store is already cleared by the request layer; this drops
// the in-memory user. Returns true when the state actually changed, so the
// UI knows whether to navigate to the login view. No-op when already
// anonymous.
func (m *Manager) HandleUnauthorized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAnonymous {
		return false
	}
	m.user = nil
	m.state = StateAnonymous
	return true
}

// Token returns the stored bearer token, empty when anonymous.
func (m *Manager) Token() string {
	return m.store.Token()
}

// CurrentUser returns the session user, or nil when anonymous or undecided.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports a confirmed session.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Pending reports that the session is not yet determined.
func (m *Manager) Pending() bool {
	s := m.State()
	return s == StateInitializing || s == StateRestoring
}
