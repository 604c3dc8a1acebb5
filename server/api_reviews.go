package shopserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	reviewhttpmapper "github.com/myjhye/shop/internal/domains/reviews/adapters/http/mapper"
	reviewsapp "github.com/myjhye/shop/internal/domains/reviews/application"
	reviewsports "github.com/myjhye/shop/internal/domains/reviews/ports"
	apierrors "github.com/myjhye/shop/internal/shared/errors"
)

// ReviewsAPI implements the product review endpoints.
type ReviewsAPI struct {
	service reviewsports.Service
}

// NewReviewsAPI wires dependencies.
func NewReviewsAPI(service reviewsports.Service) ReviewsAPI {
	return ReviewsAPI{service: service}
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// Get /api/products/:id/reviews
func (api *ReviewsAPI) ListProductReviews(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page := reviewsports.Page{
		Number: parseIntQuery(c, "page", 1),
		Size:   parseIntQuery(c, "size", 0),
	}
	reviews, total, err := api.service.ListProductReviews(c.Request.Context(), productID, page)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": reviewhttpmapper.FromDomainReviews(reviews),
		"total": total,
	})
}

// Post /api/products/:id/reviews
func (api *ReviewsAPI) CreateReview(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload reviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	review, err := api.service.CreateReview(c.Request.Context(), user.ID, productID, payload.Rating, payload.Content)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reviewhttpmapper.FromDomainReview(review))
}

// Get /api/reviews/me
func (api *ReviewsAPI) ListMyReviews(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	page := reviewsports.Page{
		Number: parseIntQuery(c, "page", 1),
		Size:   parseIntQuery(c, "size", 0),
	}
	reviews, total, err := api.service.ListMyReviews(c.Request.Context(), user.ID, page)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": reviewhttpmapper.FromDomainReviews(reviews),
		"total": total,
	})
}

// Put /api/reviews/:id
func (api *ReviewsAPI) UpdateReview(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload reviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	review, err := api.service.UpdateReview(c.Request.Context(), user.ID, id, payload.Rating, payload.Content)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviewhttpmapper.FromDomainReview(review))
}

// Delete /api/reviews/:id
func (api *ReviewsAPI) DeleteReview(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.DeleteReview(c.Request.Context(), user.ID, id); err != nil {
		respondReviewError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondReviewError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, reviewsports.ErrReviewNotFound):
		respondProblem(c, apierrors.NewNotFoundProblem("review", c.Param("id")))
	case errors.Is(err, reviewsapp.ErrNotPurchased):
		respondProblem(c, apierrors.ErrNotPurchased.WithDetail("reviews require a purchase of the product"))
	case errors.Is(err, reviewsapp.ErrNotAuthor):
		respondProblem(c, apierrors.ErrForbidden.WithDetail(err.Error()))
	case errors.Is(err, reviewsapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
