package mapper

import (
	"time"

	cartdomain "github.com/myjhye/shop/internal/domains/cart/domain"
)

// CartItem represents the transport-level cart entry. Product details are
// joined in by the transport layer when available.
type CartItem struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"productId"`
	ProductName  string    `json:"productName,omitempty"`
	ProductPrice int64     `json:"productPrice,omitempty"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromDomainCartItem converts a domain cart item into a transport representation.
func FromDomainCartItem(item *cartdomain.CartItem) CartItem {
	if item == nil {
		return CartItem{}
	}
	return CartItem{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
