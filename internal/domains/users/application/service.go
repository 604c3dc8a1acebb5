package application

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/myjhye/shop/internal/domains/users/domain"
	"github.com/myjhye/shop/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
}

func NewService(repo ports.Repository, sessions ports.SessionStore) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions}
}

func (s *Service) Signup(ctx context.Context, email, username, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, username, password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, user)
}

// Login verifies credentials and mints an opaque session token. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ports.ErrNotFound {
			return "", ports.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.CheckPassword(password) {
		return "", ports.ErrInvalidCredentials
	}
	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, user.ID); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	_ = s.sessions.Delete(ctx, token)
}

// Authenticate resolves a bearer token to its account.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ports.ErrSessionNotFound
	}
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
