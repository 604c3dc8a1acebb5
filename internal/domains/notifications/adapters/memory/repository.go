package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/myjhye/shop/internal/domains/notifications/domain"
	"github.com/myjhye/shop/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps notifications in process memory.
type Repository struct {
	mu     sync.Mutex
	items  map[int64]*domain.Notification
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: map[int64]*domain.Notification{}}
}

func (r *Repository) Create(_ context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if err := notification.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *notification
	stored.ID = r.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.items[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *Repository) ListByUser(_ context.Context, userID int64, page ports.Page) ([]*domain.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []*domain.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			owned = append(owned, n)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID > owned[j].ID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	start := page.Offset()
	if start >= len(owned) {
		return nil, total, nil
	}
	end := len(owned)
	if page.Size > 0 && start+page.Size < end {
		end = start + page.Size
	}
	result := make([]*domain.Notification, 0, end-start)
	for _, n := range owned[start:end] {
		clone := *n
		result = append(result, &clone)
	}
	return result, total, nil
}

func (r *Repository) MarkRead(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.UserID != userID {
		return ports.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}
