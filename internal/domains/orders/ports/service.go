package ports

import (
	"context"

	"github.com/myjhye/shop/internal/domains/orders/domain"
)

// Service exposes the order use cases to adapters.
type Service interface {
	// PlaceOrder runs the placement transaction and, on success, reconciles
	// the buyer's cart and triggers seller notifications.
	PlaceOrder(ctx context.Context, buyerID int64, lines []domain.PlacementLine) (*domain.Order, error)

	// GetOrderByID loads a committed order.
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListMyOrders pages through the buyer's order history, newest first.
	ListMyOrders(ctx context.Context, buyerID int64, page Page) ([]*domain.Order, int64, error)

	// HasPurchased reports whether the buyer ever ordered the product.
	HasPurchased(ctx context.Context, buyerID, productID int64) (bool, error)
}
