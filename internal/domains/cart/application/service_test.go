package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myjhye/shop/internal/domains/cart/adapters/memory"
	"github.com/myjhye/shop/internal/domains/cart/ports"
)

type fakeProductChecker struct {
	known map[int64]bool
}

func (f *fakeProductChecker) ProductExists(_ context.Context, productID int64) (bool, error) {
	return f.known[productID], nil
}

func newCartService() (*Service, *memory.Repository) {
	repo := memory.NewRepository()
	checker := &fakeProductChecker{known: map[int64]bool{1: true, 2: true}}
	return NewService(repo, WithProductChecker(checker)), repo
}

func TestAddToCart_AccumulatesQuantity(t *testing.T) {
	service, _ := newCartService()
	ctx := context.Background()

	first, err := service.AddToCart(ctx, 7, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, first.Quantity)

	second, err := service.AddToCart(ctx, 7, 1, 3)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "same product lands on the same cart row")
	require.Equal(t, 5, second.Quantity)

	items, err := service.ListCart(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestAddToCart_Rejections(t *testing.T) {
	service, _ := newCartService()
	ctx := context.Background()

	_, err := service.AddToCart(ctx, 7, 1, 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.AddToCart(ctx, 0, 1, 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.AddToCart(ctx, 7, 999, 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateQuantity_ScopedToOwner(t *testing.T) {
	service, _ := newCartService()
	ctx := context.Background()

	item, err := service.AddToCart(ctx, 7, 1, 2)
	require.NoError(t, err)

	updated, err := service.UpdateQuantity(ctx, 7, item.ID, 9)
	require.NoError(t, err)
	require.Equal(t, 9, updated.Quantity)

	_, err = service.UpdateQuantity(ctx, 8, item.ID, 1)
	require.ErrorIs(t, err, ports.ErrCartItemNotFound)

	_, err = service.UpdateQuantity(ctx, 7, item.ID, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveItem_ScopedToOwner(t *testing.T) {
	service, _ := newCartService()
	ctx := context.Background()

	item, err := service.AddToCart(ctx, 7, 1, 2)
	require.NoError(t, err)

	require.ErrorIs(t, service.RemoveItem(ctx, 8, item.ID), ports.ErrCartItemNotFound)
	require.NoError(t, service.RemoveItem(ctx, 7, item.ID))
	require.ErrorIs(t, service.RemoveItem(ctx, 7, item.ID), ports.ErrCartItemNotFound)
}

func TestRemovePurchased(t *testing.T) {
	service, _ := newCartService()
	ctx := context.Background()

	_, err := service.AddToCart(ctx, 7, 1, 2)
	require.NoError(t, err)
	_, err = service.AddToCart(ctx, 7, 2, 1)
	require.NoError(t, err)
	_, err = service.AddToCart(ctx, 8, 1, 1)
	require.NoError(t, err)

	// Products never added to the cart are fine to "remove".
	require.NoError(t, service.RemovePurchased(ctx, 7, []int64{1, 42}))

	items, err := service.ListCart(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(2), items[0].ProductID)

	// Other users' carts stay untouched.
	items, err = service.ListCart(ctx, 8)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, service.RemovePurchased(ctx, 7, nil))
}
