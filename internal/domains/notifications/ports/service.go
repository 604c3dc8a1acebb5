package ports

import (
	"context"

	"github.com/myjhye/shop/internal/domains/notifications/domain"
)

// OrderPlacedLine is one purchased line carried by an order placed event.
type OrderPlacedLine struct {
	ProductID int64
	Quantity  int
}

// OrderPlacedEvent is the cross-context payload emitted after an order commits.
type OrderPlacedEvent struct {
	OrderID int64
	BuyerID int64
	Lines   []OrderPlacedLine
}

type Service interface {
	// NotifyOrderPlaced fans an order out into one notification per sold product.
	NotifyOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
	ListMyNotifications(ctx context.Context, userID int64, page Page) ([]*domain.Notification, int64, error)
	MarkRead(ctx context.Context, userID, id int64) error
}
