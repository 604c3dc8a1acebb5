package mapper

import (
	"time"

	ordersdomain "github.com/myjhye/shop/internal/domains/orders/domain"
)

// OrderLine is one purchased line with its frozen unit price.
type OrderLine struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
	Subtotal  int64 `json:"subtotal"`
}

// Order represents the transport-level order payload.
type Order struct {
	ID        int64       `json:"id"`
	BuyerID   int64       `json:"buyerId"`
	Lines     []OrderLine `json:"lines"`
	Total     int64       `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}

// FromDomainOrder converts a domain order into a transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	lines := make([]OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLine{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}
	return Order{
		ID:        order.ID,
		BuyerID:   order.BuyerID,
		Lines:     lines,
		Total:     order.Total(),
		CreatedAt: order.CreatedAt,
	}
}

// FromDomainOrders converts a slice of domain orders to transport representation.
func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
