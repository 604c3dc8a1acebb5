package ports

import (
	"context"
	"errors"
)

// ErrSessionNotFound covers missing and expired sessions alike.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts bearer token persistence.
type SessionStore interface {
	Save(ctx context.Context, token string, userID int64) error
	// Resolve maps a live token to its user.
	Resolve(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(_ context.Context, _ string, _ int64) error { return nil }
func (noopSessionStore) Resolve(_ context.Context, _ string) (int64, error) {
	return 0, ErrSessionNotFound
}
func (noopSessionStore) Delete(_ context.Context, _ string) error { return nil }
