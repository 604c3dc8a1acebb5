package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myjhye/shop/internal/domains/reviews/adapters/memory"
	"github.com/myjhye/shop/internal/domains/reviews/ports"
)

type fakePurchaseChecker struct {
	purchases map[[2]int64]bool
}

func (f *fakePurchaseChecker) HasPurchased(_ context.Context, buyerID, productID int64) (bool, error) {
	return f.purchases[[2]int64{buyerID, productID}], nil
}

func newReviewService() *Service {
	checker := &fakePurchaseChecker{purchases: map[[2]int64]bool{
		{7, 1}: true,
	}}
	return NewService(memory.NewRepository(), checker)
}

func TestCreateReview_RequiresPurchase(t *testing.T) {
	service := newReviewService()
	ctx := context.Background()

	review, err := service.CreateReview(ctx, 7, 1, 5, "sturdy and quiet")
	require.NoError(t, err)
	require.NotZero(t, review.ID)

	_, err = service.CreateReview(ctx, 7, 2, 5, "never bought this")
	require.ErrorIs(t, err, ErrNotPurchased)

	_, err = service.CreateReview(ctx, 8, 1, 5, "someone else's purchase")
	require.ErrorIs(t, err, ErrNotPurchased)
}

func TestCreateReview_ValidatesInput(t *testing.T) {
	service := newReviewService()
	ctx := context.Background()

	_, err := service.CreateReview(ctx, 7, 1, 0, "rating too low")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.CreateReview(ctx, 7, 1, 6, "rating too high")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.CreateReview(ctx, 7, 1, 3, "   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateReview_AuthorOnly(t *testing.T) {
	service := newReviewService()
	ctx := context.Background()

	review, err := service.CreateReview(ctx, 7, 1, 4, "good enough")
	require.NoError(t, err)

	updated, err := service.UpdateReview(ctx, 7, review.ID, 2, "broke after a week")
	require.NoError(t, err)
	require.Equal(t, 2, updated.Rating)
	require.Equal(t, "broke after a week", updated.Content)

	_, err = service.UpdateReview(ctx, 8, review.ID, 5, "not mine")
	require.ErrorIs(t, err, ErrNotAuthor)

	_, err = service.UpdateReview(ctx, 7, review.ID, 9, "bad rating")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.UpdateReview(ctx, 7, 404, 3, "missing")
	require.ErrorIs(t, err, ports.ErrReviewNotFound)
}

func TestDeleteReview_AuthorOnly(t *testing.T) {
	service := newReviewService()
	ctx := context.Background()

	review, err := service.CreateReview(ctx, 7, 1, 4, "good enough")
	require.NoError(t, err)

	require.ErrorIs(t, service.DeleteReview(ctx, 8, review.ID), ErrNotAuthor)
	require.NoError(t, service.DeleteReview(ctx, 7, review.ID))
	require.ErrorIs(t, service.DeleteReview(ctx, 7, review.ID), ports.ErrReviewNotFound)
}

func TestListReviews(t *testing.T) {
	checker := &fakePurchaseChecker{purchases: map[[2]int64]bool{
		{7, 1}: true, {7, 2}: true, {8, 1}: true,
	}}
	service := NewService(memory.NewRepository(), checker)
	ctx := context.Background()

	_, err := service.CreateReview(ctx, 7, 1, 5, "first")
	require.NoError(t, err)
	_, err = service.CreateReview(ctx, 7, 2, 4, "second")
	require.NoError(t, err)
	_, err = service.CreateReview(ctx, 8, 1, 3, "third")
	require.NoError(t, err)

	reviews, total, err := service.ListProductReviews(ctx, 1, ports.Page{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, reviews, 2)

	reviews, total, err = service.ListMyReviews(ctx, 7, ports.Page{})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, reviews, 2)
	for _, review := range reviews {
		require.Equal(t, int64(7), review.AuthorID)
	}
}
