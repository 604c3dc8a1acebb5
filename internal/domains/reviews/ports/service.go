package ports

import (
	"context"

	"github.com/myjhye/shop/internal/domains/reviews/domain"
)

type Service interface {
	// CreateReview stores a review after verifying the author purchased the product.
	CreateReview(ctx context.Context, authorID, productID int64, rating int, content string) (*domain.Review, error)
	ListProductReviews(ctx context.Context, productID int64, page Page) ([]*domain.Review, int64, error)
	ListMyReviews(ctx context.Context, authorID int64, page Page) ([]*domain.Review, int64, error)
	// UpdateReview rewrites a review the caller authored.
	UpdateReview(ctx context.Context, authorID, id int64, rating int, content string) (*domain.Review, error)
	// DeleteReview removes a review the caller authored.
	DeleteReview(ctx context.Context, authorID, id int64) error
}
