package auth

import (
	"context"
	"time"

	"github.com/CWN221/Flask-To-Do-List/internal/cache"
)

const revokedSessionKeyPrefix = "revoked_session:"

// SessionStoreInterface defines the interface for session revocation storage.
type SessionStoreInterface interface {
	RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SessionStore tracks logged-out session tokens in Redis until they expire
// on their own. When Redis is unreachable, sessions fail open: a token that
// still verifies stays usable.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// RevokeSession marks a session token as logged out until it expires.
func (s *SessionStore) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := revokedSessionKeyPrefix + tokenID
	// Store a simple marker
	return s.cache.Set(ctx, key, []byte("1"), ttl)
}

// IsSessionRevoked checks whether a session token has been logged out.
func (s *SessionStore) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedSessionKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, nil // fail open if redis is away
	}
	return data != nil, nil
}
