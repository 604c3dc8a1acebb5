package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myjhye/shop/internal/domains/notifications/adapters/memory"
	"github.com/myjhye/shop/internal/domains/notifications/ports"
)

type fakeSellerDirectory struct {
	sellers map[int64]ports.ProductSeller
}

func (f *fakeSellerDirectory) Resolve(_ context.Context, productID int64) (ports.ProductSeller, error) {
	seller, ok := f.sellers[productID]
	if !ok {
		return ports.ProductSeller{}, errors.New("product not found")
	}
	return seller, nil
}

func newNotificationService() (*Service, *memory.Repository) {
	repo := memory.NewRepository()
	sellers := &fakeSellerDirectory{sellers: map[int64]ports.ProductSeller{
		1: {SellerID: 50, ProductName: "desk lamp"},
		2: {SellerID: 51, ProductName: "office chair"},
	}}
	return NewService(repo, sellers), repo
}

func TestNotifyOrderPlaced_OneNotificationPerProduct(t *testing.T) {
	service, _ := newNotificationService()
	ctx := context.Background()

	err := service.NotifyOrderPlaced(ctx, ports.OrderPlacedEvent{
		OrderID: 42,
		BuyerID: 7,
		Lines: []ports.OrderPlacedLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	mine, total, err := service.ListMyNotifications(ctx, 50, ports.Page{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, `"desk lamp" sold: 2 unit(s) in order #42`, mine[0].Message)
	require.Equal(t, int64(42), mine[0].OrderID)
	require.False(t, mine[0].Read)

	_, total, err = service.ListMyNotifications(ctx, 51, ports.Page{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestNotifyOrderPlaced_AggregatesDuplicateProductLines(t *testing.T) {
	service, _ := newNotificationService()
	ctx := context.Background()

	err := service.NotifyOrderPlaced(ctx, ports.OrderPlacedEvent{
		OrderID: 43,
		BuyerID: 7,
		Lines: []ports.OrderPlacedLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 1, Quantity: 3},
		},
	})
	require.NoError(t, err)

	mine, total, err := service.ListMyNotifications(ctx, 50, ports.Page{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total, "duplicate lines collapse into one notification")
	require.Equal(t, 5, mine[0].Quantity)
}

func TestNotifyOrderPlaced_SkipsUnresolvableSellers(t *testing.T) {
	service, _ := newNotificationService()
	ctx := context.Background()

	err := service.NotifyOrderPlaced(ctx, ports.OrderPlacedEvent{
		OrderID: 44,
		BuyerID: 7,
		Lines: []ports.OrderPlacedLine{
			{ProductID: 404, Quantity: 1},
			{ProductID: 1, Quantity: 1},
		},
	})
	require.NoError(t, err, "an unresolvable product must not fail the delivery")

	_, total, err := service.ListMyNotifications(ctx, 50, ports.Page{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestMarkRead_ScopedToRecipient(t *testing.T) {
	service, _ := newNotificationService()
	ctx := context.Background()

	err := service.NotifyOrderPlaced(ctx, ports.OrderPlacedEvent{
		OrderID: 45,
		BuyerID: 7,
		Lines:   []ports.OrderPlacedLine{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	mine, _, err := service.ListMyNotifications(ctx, 50, ports.Page{})
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.ErrorIs(t, service.MarkRead(ctx, 99, mine[0].ID), ports.ErrNotificationNotFound)
	require.NoError(t, service.MarkRead(ctx, 50, mine[0].ID))

	mine, _, err = service.ListMyNotifications(ctx, 50, ports.Page{})
	require.NoError(t, err)
	require.True(t, mine[0].Read)
}
