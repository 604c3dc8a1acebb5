package ports

import (
	"context"

	"github.com/myjhye/shop/internal/domains/users/domain"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Signup(ctx context.Context, email, username, password string) (*domain.User, error)
	// Login verifies credentials and returns a fresh session token.
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string)
	// Authenticate maps a session token to the user it belongs to.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}
