package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/myjhye/shop/internal/domains/users/adapters/memory"
	"github.com/myjhye/shop/internal/domains/users/domain"
	"github.com/myjhye/shop/internal/domains/users/ports"
)

func newUserService() *Service {
	return NewService(memory.NewRepository(), memory.NewSessionStore(time.Hour))
}

func TestSignup(t *testing.T) {
	service := newUserService()
	ctx := context.Background()

	user, err := service.Signup(ctx, "Alice@Example.com", "alice", "hunter2hunter2")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice@example.com", user.Email, "email is normalized on signup")

	_, err = service.Signup(ctx, "alice@example.com", "other", "hunter2hunter2")
	require.ErrorIs(t, err, ports.ErrEmailTaken)

	_, err = service.Signup(ctx, "no-at-sign", "bob", "hunter2hunter2")
	require.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = service.Signup(ctx, "bob@example.com", "bob", "short")
	require.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestLoginAndAuthenticate(t *testing.T) {
	service := newUserService()
	ctx := context.Background()

	signed, err := service.Signup(ctx, "alice@example.com", "alice", "hunter2hunter2")
	require.NoError(t, err)

	token, err := service.Login(ctx, "ALICE@example.com ", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := service.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, signed.ID, user.ID)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	service := newUserService()
	ctx := context.Background()

	_, err := service.Signup(ctx, "alice@example.com", "alice", "hunter2hunter2")
	require.NoError(t, err)

	_, err = service.Login(ctx, "alice@example.com", "wrong-password")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = service.Login(ctx, "nobody@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = service.Login(ctx, "", "")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	service := newUserService()
	ctx := context.Background()

	_, err := service.Signup(ctx, "alice@example.com", "alice", "hunter2hunter2")
	require.NoError(t, err)

	token, err := service.Login(ctx, "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)

	service.Logout(ctx, token)

	_, err = service.Authenticate(ctx, token)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)

	// Logging out an unknown token is a no-op.
	service.Logout(ctx, "bogus")
	service.Logout(ctx, "")
}

func TestAuthenticate_EmptyOrUnknownToken(t *testing.T) {
	service := newUserService()
	ctx := context.Background()

	_, err := service.Authenticate(ctx, "")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)

	_, err = service.Authenticate(ctx, "not-a-session")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_ExpiredTokenRejected(t *testing.T) {
	service := NewService(memory.NewRepository(), memory.NewSessionStore(time.Nanosecond))
	ctx := context.Background()

	_, err := service.Signup(ctx, "alice@example.com", "alice", "hunter2hunter2")
	require.NoError(t, err)

	token, err := service.Login(ctx, "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = service.Authenticate(ctx, token)
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}
