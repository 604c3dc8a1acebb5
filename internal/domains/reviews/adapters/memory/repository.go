package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/myjhye/shop/internal/domains/reviews/domain"
	"github.com/myjhye/shop/internal/domains/reviews/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps reviews in process memory.
type Repository struct {
	mu      sync.Mutex
	reviews map[int64]*domain.Review
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{reviews: map[int64]*domain.Review{}}
}

func (r *Repository) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *review
	stored.ID = r.nextID
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.reviews[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, ports.ErrReviewNotFound
	}
	clone := *review
	return &clone, nil
}

func (r *Repository) ListByProduct(_ context.Context, productID int64, page ports.Page) ([]*domain.Review, int64, error) {
	return r.list(func(review *domain.Review) bool { return review.ProductID == productID }, page)
}

func (r *Repository) ListByAuthor(_ context.Context, authorID int64, page ports.Page) ([]*domain.Review, int64, error) {
	return r.list(func(review *domain.Review) bool { return review.AuthorID == authorID }, page)
}

func (r *Repository) list(match func(*domain.Review) bool, page ports.Page) ([]*domain.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Review
	for _, review := range r.reviews {
		if match(review) {
			matched = append(matched, review)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return nil, total, nil
	}
	end := len(matched)
	if page.Size > 0 && start+page.Size < end {
		end = start + page.Size
	}
	result := make([]*domain.Review, 0, end-start)
	for _, review := range matched[start:end] {
		clone := *review
		result = append(result, &clone)
	}
	return result, total, nil
}

func (r *Repository) Update(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.reviews[review.ID]
	if !ok {
		return nil, ports.ErrReviewNotFound
	}
	current.Rating = review.Rating
	current.Content = review.Content
	current.UpdatedAt = time.Now().UTC()
	clone := *current
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return ports.ErrReviewNotFound
	}
	delete(r.reviews, id)
	return nil
}
