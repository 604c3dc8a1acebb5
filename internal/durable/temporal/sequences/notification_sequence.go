package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	notificationsports "github.com/myjhye/shop/internal/domains/notifications/ports"
	notificationactivities "github.com/myjhye/shop/internal/durable/temporal/activities/notifications"
)

// RunOrderNotificationSequence executes the activities that fan a committed
// order out to the affected sellers.
func RunOrderNotificationSequence(ctx workflow.Context, event notificationsports.OrderPlacedEvent) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("order notification sequence started", "orderId", event.OrderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	if err := workflow.ExecuteActivity(ctx, notificationactivities.NotifySellersActivityName, event).Get(ctx, nil); err != nil {
		logger.Error("order notification sequence failed", "orderId", event.OrderID, "error", err)
		return err
	}
	logger.Info("order notification sequence completed", "orderId", event.OrderID)
	return nil
}
