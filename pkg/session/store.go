// Package session persists per-role API tokens for clients of the job board.
// A browser-like client signs in as a seeker, a provider and an admin at the
// same time; each role's tokens live under their own key so clearing one
// session never touches another.
package session

import "sync"

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Store interface {
	// Get returns the tokens for the role and whether any are stored.
	Get(role string) (Tokens, bool)
	// Set replaces the role's tokens.
	Set(role string, t Tokens) error
	// Clear removes the role's tokens. Clearing an absent role is a no-op.
	Clear(role string) error
	// ClearAll removes every role's tokens.
	ClearAll() error
}

// MemStore is a process-local Store. Safe for concurrent use.
type MemStore struct {
	mu     sync.RWMutex
	tokens map[string]Tokens
}

func NewMemStore() *MemStore {
	return &MemStore{tokens: make(map[string]Tokens)}
}

func (s *MemStore) Get(role string) (Tokens, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[role]
	return t, ok
}

func (s *MemStore) Set(role string, t Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[role] = t
	return nil
}

func (s *MemStore) Clear(role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, role)
	return nil
}

func (s *MemStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]Tokens)
	return nil
}
