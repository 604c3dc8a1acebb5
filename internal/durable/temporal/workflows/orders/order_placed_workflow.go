package orders

import (
	"go.temporal.io/sdk/workflow"

	notificationsports "github.com/myjhye/shop/internal/domains/notifications/ports"
	"github.com/myjhye/shop/internal/durable/temporal/sequences"
)

const (
	// OrderPlacedWorkflowName is the public identifier for registering the workflow.
	OrderPlacedWorkflowName = "orders.workflows.PlacedNotification"
	// OrderNotificationsTaskQueue is the queue consumed by the worker delivering seller notifications.
	OrderNotificationsTaskQueue = "ORDER_NOTIFICATIONS"
)

// OrderPlacedWorkflowInput carries the committed order event into the workflow.
type OrderPlacedWorkflowInput struct {
	Event   notificationsports.OrderPlacedEvent
	TraceID string
}

// OrderPlacedWorkflow durably delivers seller notifications for a committed order.
func OrderPlacedWorkflow(ctx workflow.Context, input OrderPlacedWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacedWorkflow started", withTraceID(input.TraceID, "orderId", input.Event.OrderID)...)
	if err := sequences.RunOrderNotificationSequence(ctx, input.Event); err != nil {
		logger.Error("OrderPlacedWorkflow failed", withTraceID(input.TraceID, "orderId", input.Event.OrderID, "error", err)...)
		return err
	}
	logger.Info("OrderPlacedWorkflow completed", withTraceID(input.TraceID, "orderId", input.Event.OrderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
