package ports

import (
	"context"
	"errors"

	"github.com/myjhye/shop/internal/domains/reviews/domain"
)

var ErrReviewNotFound = errors.New("review not found")

// Page selects one slice of a review listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

type Repository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64, page Page) ([]*domain.Review, int64, error)
	ListByAuthor(ctx context.Context, authorID int64, page Page) ([]*domain.Review, int64, error)
	Update(ctx context.Context, review *domain.Review) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
}
