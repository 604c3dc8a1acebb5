package memory

import (
	"context"
	"sync"
	"time"

	"github.com/myjhye/shop/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps session tokens in process memory with a TTL.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
}

type session struct {
	userID    int64
	expiresAt time.Time
}

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{sessions: map[string]session{}, ttl: ttl}
}

func (s *SessionStore) Save(_ context.Context, token string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Resolve(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok {
		return 0, ports.ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return 0, ports.ErrSessionNotFound
	}
	return entry.userID, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
