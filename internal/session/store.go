package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/cache"
	"github.com/SAP-F-2025/assessment-console/internal/models"
)

// ErrNoSession is returned when no (unexpired) session is stored under a key.
var ErrNoSession = errors.New("not logged in")

// Store persists sessions between calls.
type Store interface {
	Save(ctx context.Context, key string, s *models.Session) error
	Load(ctx context.Context, key string) (*models.Session, error)
	Delete(ctx context.Context, key string) error
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (m *MemoryStore) Save(_ context.Context, key string, s *models.Session) error {
	m.mu.Lock()
	m.sessions[key] = *s
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(_ context.Context, key string) (*models.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoSession
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.sessions, key)
	m.mu.Unlock()
	return nil
}

// RedisStore keeps sessions in the shared cache so several BFF replicas see
// the same logins. Entries expire with the session.
type RedisStore struct {
	cache cache.CacheService
}

func NewRedisStore(c cache.CacheService) *RedisStore {
	return &RedisStore{cache: c}
}

func sessionKey(key string) string {
	return "session:" + key
}

func (r *RedisStore) Save(ctx context.Context, key string, s *models.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if s.ExpiresAt.IsZero() {
		ttl = 0
	} else if ttl <= 0 {
		return r.Delete(ctx, key)
	}
	return r.cache.Set(ctx, sessionKey(key), s, ttl)
}

func (r *RedisStore) Load(ctx context.Context, key string) (*models.Session, error) {
	var s models.Session
	if err := r.cache.Get(ctx, sessionKey(key), &s); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.cache.Delete(ctx, sessionKey(key))
}

// FileStore keeps one JSON file per key in dir, readable only by the owner.
// It is what lets `login` survive between CLI invocations.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultDir is the per-user config directory for the console.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "assessment-console"), nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, "session-"+filepath.Base(key)+".json")
}

func (f *FileStore) Save(_ context.Context, key string, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(f.path(key), data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (f *FileStore) Load(_ context.Context, key string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, ErrNoSession
	}
	return &s, nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
