package ports

import (
	"context"

	"github.com/myjhye/shop/internal/domains/cart/domain"
)

type Service interface {
	AddToCart(ctx context.Context, userID, productID int64, quantity int) (*domain.CartItem, error)
	ListCart(ctx context.Context, userID int64) ([]*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID int64) error
	// RemovePurchased clears cart entries for products the user just bought.
	RemovePurchased(ctx context.Context, userID int64, productIDs []int64) error
}
