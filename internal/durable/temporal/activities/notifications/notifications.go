package notifications

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	notificationsports "github.com/myjhye/shop/internal/domains/notifications/ports"
)

// NotifySellersActivityName writes one notification per sold product.
const NotifySellersActivityName = "notifications.activities.NotifySellers"

// Activities groups activities that operate on the notifications bounded context.
type Activities struct {
	service notificationsports.Service
}

// NewActivities wires the notifications service into the Temporal activities bundle.
func NewActivities(service notificationsports.Service) *Activities {
	return &Activities{service: service}
}

// NotifySellers resolves sellers for the purchased products and stores their
// notifications.
func (a *Activities) NotifySellers(ctx context.Context, event notificationsports.OrderPlacedEvent) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("notify sellers activity not initialized", "orderId", event.OrderID)
		return errors.New("notify sellers activity not initialized")
	}
	logger.Info("NotifySellers activity started", "orderId", event.OrderID)
	if err := a.service.NotifyOrderPlaced(ctx, event); err != nil {
		logger.Error("NotifySellers activity failed", "orderId", event.OrderID, "error", err)
		return err
	}
	logger.Info("NotifySellers activity completed", "orderId", event.OrderID)
	return nil
}
