package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	userports "github.com/myjhye/shop/internal/domains/users/ports"
)

// SessionStore keeps bearer sessions in Redis. Expiry is delegated to key TTLs,
// so no purge job is needed.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

const keyPrefix = "shop:session:"

// NewSessionStore wires a Redis-backed session store. Caller owns client lifecycle.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, token string, userID int64) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" || userID <= 0 {
		return errors.New("token and user are required")
	}
	return s.client.Set(ctx, keyPrefix+token, userID, s.ttl).Err()
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	if err := s.ensureClient(); err != nil {
		return 0, err
	}
	userID, err := s.client.Get(ctx, keyPrefix+token).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, userports.ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, keyPrefix+token).Err()
}

func (s *SessionStore) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis session store not configured")
	}
	return nil
}

var _ userports.SessionStore = (*SessionStore)(nil)
