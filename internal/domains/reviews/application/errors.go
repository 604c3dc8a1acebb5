package application

import (
	"errors"
	"fmt"

	"github.com/myjhye/shop/internal/domains/reviews/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid review input")
	// ErrNotPurchased blocks reviews from users with no purchase of the product.
	ErrNotPurchased = errors.New("product was never purchased by this user")
	// ErrNotAuthor signals the caller does not own the review.
	ErrNotAuthor = errors.New("caller is not the review author")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidAuthor) ||
		errors.Is(err, domain.ErrInvalidProduct) ||
		errors.Is(err, domain.ErrInvalidRating) ||
		errors.Is(err, domain.ErrEmptyContent) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
