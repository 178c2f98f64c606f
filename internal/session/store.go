// Package session persists the auth token pair across process restarts.
// Only two opaque strings ever touch durable storage.
package session

import (
	"context"
	"errors"
	"sync"
)

// Fixed keys under which the token pair is stored.
const (
	TokenKey        = "smartpark:token"
	RefreshTokenKey = "smartpark:refresh_token"
)

// ErrNoSession is returned when no token pair is persisted.
var ErrNoSession = errors.New("session: no persisted session")

// TokenStore holds the token pair between runs.
type TokenStore interface {
	Save(ctx context.Context, token, refreshToken string) error
	Load(ctx context.Context) (token, refreshToken string, err error)
	Clear(ctx context.Context) error
}

// MemoryStore keeps the pair in process memory. Used in tests and when no
// durable backend is configured.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	refresh string
	set     bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores the pair.
func (s *MemoryStore) Save(_ context.Context, token, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.refresh = refreshToken
	s.set = true
	return nil
}

// Load returns the stored pair or ErrNoSession.
func (s *MemoryStore) Load(_ context.Context) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", "", ErrNoSession
	}
	return s.token, s.refresh, nil
}

// Clear forgets the pair.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.refresh = ""
	s.set = false
	return nil
}
