// Package token holds the in-memory session store. Tokens are opaque
// random identifiers with no expiry and no persistence: restarting the
// process logs every user out.
package token

import (
	"sync"

	"github.com/google/uuid"
)

// Store maps bearer tokens to user IDs. It is safe for concurrent use by
// request-handling goroutines. Construct one at startup and inject it;
// there is no package-level instance.
type Store struct {
	mu     sync.RWMutex
	tokens map[string]uint
}

func NewStore() *Store {
	return &Store{
		tokens: make(map[string]uint),
	}
}

// Issue generates a fresh token for userID and records the mapping.
func (s *Store) Issue(userID uint) string {
	t := uuid.NewString()

	s.mu.Lock()
	s.tokens[t] = userID
	s.mu.Unlock()

	return t
}

// Resolve returns the user ID a token was issued for, or false when the
// token is unknown or has been invalidated.
func (s *Store) Resolve(t string) (uint, bool) {
	if t == "" {
		return 0, false
	}

	s.mu.RLock()
	userID, ok := s.tokens[t]
	s.mu.RUnlock()

	return userID, ok
}

// Invalidate removes a token. Unknown tokens are ignored.
func (s *Store) Invalidate(t string) {
	s.mu.Lock()
	delete(s.tokens, t)
	s.mu.Unlock()
}
