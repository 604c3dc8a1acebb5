package memory

import (
	"context"
	"sync"
	"time"

	"github.com/myjhye/shop/internal/domains/users/domain"
	"github.com/myjhye/shop/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps user accounts in process memory.
type Repository struct {
	mu      sync.Mutex
	byID    map[int64]*domain.User
	byEmail map[string]int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{
		byID:    map[int64]*domain.User{},
		byEmail: map[string]int64{},
	}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[user.Email]; taken {
		return nil, ports.ErrEmailTaken
	}
	r.nextID++
	stored := *user
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	clone := stored
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}
