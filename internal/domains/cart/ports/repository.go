package ports

import (
	"context"
	"errors"

	"github.com/myjhye/shop/internal/domains/cart/domain"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type Repository interface {
	// Add inserts the item or accumulates quantity onto the existing
	// (user, product) row.
	Add(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.CartItem, error)
	// UpdateQuantity replaces the quantity on an item owned by userID.
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*domain.CartItem, error)
	// Remove deletes an item owned by userID.
	Remove(ctx context.Context, userID, itemID int64) error
	// RemoveByProducts deletes the user's items for the given products.
	// Missing items are not an error.
	RemoveByProducts(ctx context.Context, userID int64, productIDs []int64) error
}
