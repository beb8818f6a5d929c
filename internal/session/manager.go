// Package session owns the authenticated context every service call runs in.
// Login initializes it, Logout tears it down; nothing reads a token from
// global state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
)

const DefaultKey = "default"

// Authenticator exchanges credentials for a session token.
type Authenticator interface {
	Login(ctx context.Context, draft models.LoginDraft) (*models.Session, error)
}

type Manager struct {
	mu      sync.Mutex
	store   Store
	auth    Authenticator
	key     string
	ttl     time.Duration
	emitter *events.Emitter
	logger  utils.Logger
	now     func() time.Time

	current *models.Session
	loaded  bool
}

type ManagerOption func(*Manager)

func WithKey(key string) ManagerOption {
	return func(m *Manager) { m.key = key }
}

func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) { m.ttl = ttl }
}

func WithEmitter(e *events.Emitter) ManagerOption {
	return func(m *Manager) { m.emitter = e }
}

func WithLogger(l utils.Logger) ManagerOption {
	return func(m *Manager) { m.logger = l }
}

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func NewManager(store Store, auth Authenticator, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		auth:   auth,
		key:    DefaultKey,
		ttl:    24 * time.Hour,
		logger: utils.NewNopLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login authenticates and persists the new session, replacing any previous one.
func (m *Manager) Login(ctx context.Context, draft models.LoginDraft) (*models.Session, error) {
	s, err := m.auth.Login(ctx, draft)
	if err != nil {
		return nil, err
	}

	now := m.now()
	s.CreatedAt = now
	if s.ExpiresAt.IsZero() && m.ttl > 0 {
		s.ExpiresAt = now.Add(m.ttl)
	}

	if err := m.store.Save(ctx, m.key, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.loaded = true
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "session started", "user", s.User.Email)
	m.emitter.Emit(ctx, events.NewSessionStartedEvent(s.User.ID, s.User.Email))

	cp := *s
	return &cp, nil
}

// Logout discards the session locally and in the store. It is idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	prev := m.current
	m.current = nil
	m.loaded = true
	m.mu.Unlock()

	if err := m.store.Delete(ctx, m.key); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if prev != nil {
		m.logger.InfoContext(ctx, "session ended", "user", prev.User.Email)
		m.emitter.Emit(ctx, events.NewSessionEndedEvent(prev.User.ID, prev.User.Email))
	}
	return nil
}

// Current returns the live session or ErrNoSession. Expired sessions are
// removed on first sight.
func (m *Manager) Current(ctx context.Context) (*models.Session, error) {
	m.mu.Lock()
	s, loaded := m.current, m.loaded
	m.mu.Unlock()

	if !loaded {
		stored, err := m.store.Load(ctx, m.key)
		if err != nil && !errors.Is(err, ErrNoSession) {
			return nil, err
		}
		m.mu.Lock()
		if !m.loaded {
			m.current, m.loaded = stored, true
		}
		s = m.current
		m.mu.Unlock()
	}

	if s == nil {
		return nil, ErrNoSession
	}
	if s.Expired(m.now()) {
		m.logger.InfoContext(ctx, "session expired", "user", s.User.Email)
		m.mu.Lock()
		if m.current == s {
			m.current = nil
		}
		m.mu.Unlock()
		_ = m.store.Delete(ctx, m.key)
		return nil, ErrNoSession
	}

	cp := *s
	return &cp, nil
}

// Token implements client.TokenSource. No session means an anonymous request.
func (m *Manager) Token(ctx context.Context) (string, error) {
	s, err := m.Current(ctx)
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.Token, nil
}
