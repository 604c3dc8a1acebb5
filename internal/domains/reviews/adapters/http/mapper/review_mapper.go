package mapper

import (
	"time"

	reviewsdomain "github.com/myjhye/shop/internal/domains/reviews/domain"
)

// Review represents the transport-level review payload.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	AuthorID  int64     `json:"authorId"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainReview converts a domain review into a transport representation.
func FromDomainReview(review *reviewsdomain.Review) Review {
	if review == nil {
		return Review{}
	}
	return Review{
		ID:        review.ID,
		ProductID: review.ProductID,
		AuthorID:  review.AuthorID,
		Rating:    review.Rating,
		Content:   review.Content,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// FromDomainReviews converts a slice of domain reviews to transport representation.
func FromDomainReviews(reviews []*reviewsdomain.Review) []Review {
	result := make([]Review, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, FromDomainReview(review))
	}
	return result
}
