package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Well-known keys written for every session. Readers must tolerate absence.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// Store is the key/value collaborator session state is stashed in. Get
// returns ("", nil) when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// MemoryStore is an in-process Store used in development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	entry, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return "", nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.values, key)
		s.mu.Unlock()
		return "", nil
	}
	return entry.value, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.values[key] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.values, key)
	}
	s.mu.Unlock()
	return nil
}

// Manager writes and clears the per-user session triple (access token,
// refresh token, serialized user) in the underlying store.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager wraps a store with the configured session TTL.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Session is the stored view of an authenticated session.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserJSON     string
}

// Save stores the token pair and the JSON-serialized user for userID.
func (m *Manager) Save(ctx context.Context, userID, accessToken, refreshToken string, user interface{}) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serialize session user: %w", err)
	}
	if err := m.store.Set(ctx, m.key(userID, KeyAccessToken), accessToken, m.ttl); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if err := m.store.Set(ctx, m.key(userID, KeyRefreshToken), refreshToken, m.ttl); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	if err := m.store.Set(ctx, m.key(userID, KeyUser), string(raw), m.ttl); err != nil {
		return fmt.Errorf("store session user: %w", err)
	}
	return nil
}

// Load returns the stored session. Missing keys yield empty fields.
func (m *Manager) Load(ctx context.Context, userID string) (Session, error) {
	var sess Session
	var err error
	if sess.AccessToken, err = m.store.Get(ctx, m.key(userID, KeyAccessToken)); err != nil {
		return Session{}, fmt.Errorf("load access token: %w", err)
	}
	if sess.RefreshToken, err = m.store.Get(ctx, m.key(userID, KeyRefreshToken)); err != nil {
		return Session{}, fmt.Errorf("load refresh token: %w", err)
	}
	if sess.UserJSON, err = m.store.Get(ctx, m.key(userID, KeyUser)); err != nil {
		return Session{}, fmt.Errorf("load session user: %w", err)
	}
	return sess, nil
}

// Clear removes all session keys for userID.
func (m *Manager) Clear(ctx context.Context, userID string) error {
	return m.store.Delete(ctx,
		m.key(userID, KeyAccessToken),
		m.key(userID, KeyRefreshToken),
		m.key(userID, KeyUser),
	)
}

func (m *Manager) key(userID, field string) string {
	return fmt.Sprintf("session:%s:%s", userID, field)
}
