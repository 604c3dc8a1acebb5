package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidAuthor  = errors.New("review author is required")
	ErrInvalidProduct = errors.New("review product is required")
	ErrInvalidRating  = errors.New("review rating must be between 1 and 5")
	ErrEmptyContent   = errors.New("review content is required")
)

// Review is a buyer's rating of a product they purchased.
type Review struct {
	ID        int64
	ProductID int64
	AuthorID  int64
	Rating    int
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewReview(productID, authorID int64, rating int, content string) (*Review, error) {
	r := &Review{
		ProductID: productID,
		AuthorID:  authorID,
		Rating:    rating,
		Content:   strings.TrimSpace(content),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) Validate() error {
	if r.AuthorID <= 0 {
		return ErrInvalidAuthor
	}
	if r.ProductID <= 0 {
		return ErrInvalidProduct
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if r.Content == "" {
		return ErrEmptyContent
	}
	return nil
}

// AuthoredBy reports whether userID wrote the review.
func (r *Review) AuthoredBy(userID int64) bool {
	return r.AuthorID == userID
}
