package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/myjhye/shop/internal/domains/catalog/domain"
	"github.com/myjhye/shop/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps products in process memory.
type Repository struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := cloneProduct(product)
	stored.ID = r.nextID
	stored.Version = 0
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.products[stored.ID] = stored
	return cloneProduct(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) List(_ context.Context, filter ports.Filter) ([]*domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Product
	for _, product := range r.products {
		if !matches(product, filter) {
			continue
		}
		matched = append(matched, product)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := filter.Page.Offset()
	if start >= len(matched) {
		return nil, total, nil
	}
	end := len(matched)
	if filter.Page.Size > 0 && start+filter.Page.Size < end {
		end = start + filter.Page.Size
	}
	result := make([]*domain.Product, 0, end-start)
	for _, product := range matched[start:end] {
		result = append(result, cloneProduct(product))
	}
	return result, total, nil
}

func (r *Repository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.products[product.ID]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	if current.Version != product.Version {
		return nil, ports.ErrVersionConflict
	}
	stored := cloneProduct(product)
	stored.Version = current.Version + 1
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	r.products[stored.ID] = stored
	return cloneProduct(stored), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func matches(product *domain.Product, filter ports.Filter) bool {
	if filter.Category != "" && product.Category != filter.Category {
		return false
	}
	if filter.SellerID > 0 && product.SellerID != filter.SellerID {
		return false
	}
	if filter.Keyword != "" {
		keyword := strings.ToLower(filter.Keyword)
		if !strings.Contains(strings.ToLower(product.Name), keyword) &&
			!strings.Contains(strings.ToLower(product.Description), keyword) {
			return false
		}
	}
	return true
}

func cloneProduct(product *domain.Product) *domain.Product {
	clone := *product
	clone.Images = append([]string(nil), product.Images...)
	return &clone
}
