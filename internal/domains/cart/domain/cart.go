package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidUser     = errors.New("cart owner is required")
	ErrInvalidProduct  = errors.New("cart product is required")
	ErrInvalidQuantity = errors.New("cart quantity must be positive")
)

// CartItem is one product staged by a user for a future order. At most one
// item per (user, product) pair exists; adding again accumulates quantity.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCartItem(userID, productID int64, quantity int) (*CartItem, error) {
	item := &CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *CartItem) Validate() error {
	if c.UserID <= 0 {
		return ErrInvalidUser
	}
	if c.ProductID <= 0 {
		return ErrInvalidProduct
	}
	if c.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
