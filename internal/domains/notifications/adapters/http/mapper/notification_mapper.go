package mapper

import (
	"time"

	notificationsdomain "github.com/myjhye/shop/internal/domains/notifications/domain"
)

// Notification represents the transport-level notification payload.
type Notification struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainNotification converts a domain notification into a transport representation.
func FromDomainNotification(notification *notificationsdomain.Notification) Notification {
	if notification == nil {
		return Notification{}
	}
	return Notification{
		ID:        notification.ID,
		OrderID:   notification.OrderID,
		ProductID: notification.ProductID,
		Quantity:  notification.Quantity,
		Message:   notification.Message,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}
}

// FromDomainNotifications converts a slice of domain notifications to transport representation.
func FromDomainNotifications(notifications []*notificationsdomain.Notification) []Notification {
	result := make([]Notification, 0, len(notifications))
	for _, notification := range notifications {
		result = append(result, FromDomainNotification(notification))
	}
	return result
}
