package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/myjhye/shop/internal/domains/cart/domain"
	"github.com/myjhye/shop/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps cart items in process memory.
type Repository struct {
	mu     sync.Mutex
	items  map[int64]*domain.CartItem
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: map[int64]*domain.CartItem{}}
}

func (r *Repository) Add(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			existing.UpdatedAt = now
			clone := *existing
			return &clone, nil
		}
	}

	r.nextID++
	stored := *item
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.items[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *Repository) ListByUser(_ context.Context, userID int64) ([]*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []*domain.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			clone := *item
			owned = append(owned, &clone)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	return owned, nil
}

func (r *Repository) UpdateQuantity(_ context.Context, userID, itemID int64, quantity int) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.UserID != userID {
		return nil, ports.ErrCartItemNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now().UTC()
	clone := *item
	return &clone, nil
}

func (r *Repository) Remove(_ context.Context, userID, itemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || item.UserID != userID {
		return ports.ErrCartItemNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *Repository) RemoveByProducts(_ context.Context, userID int64, productIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[int64]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	for id, item := range r.items {
		if item.UserID != userID {
			continue
		}
		if _, ok := wanted[item.ProductID]; ok {
			delete(r.items, id)
		}
	}
	return nil
}
