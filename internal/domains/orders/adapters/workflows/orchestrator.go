package workflows

import (
	"context"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	notificationsports "github.com/myjhye/shop/internal/domains/notifications/ports"
	"github.com/myjhye/shop/internal/domains/orders/domain"
	"github.com/myjhye/shop/internal/domains/orders/ports"
	orderworkflows "github.com/myjhye/shop/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.PlacementNotifier = (*TemporalOrderNotifications)(nil)
	_ ports.PlacementNotifier = (*InlineOrderNotifications)(nil)
)

// TemporalOrderNotifications starts the seller notification workflow on a
// Temporal cluster. Delivery then survives process restarts.
type TemporalOrderNotifications struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderNotifications wires a Temporal client into the notifier.
func NewTemporalOrderNotifications(c client.Client) *TemporalOrderNotifications {
	return &TemporalOrderNotifications{client: c, taskQueue: orderworkflows.OrderNotificationsTaskQueue}
}

// OrderPlaced starts the notification workflow and returns without waiting for
// delivery. The workflow ID is keyed on the order, so a duplicate start for the
// same order is treated as already handled.
func (o *TemporalOrderNotifications) OrderPlaced(ctx context.Context, order *domain.Order) error {
	if o == nil || o.client == nil {
		return errors.New("temporal order notifications not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-placed-notify-%d", order.ID),
		TaskQueue: o.taskQueue,
	}
	// The name must match the worker's registration alias.
	_, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacedWorkflowName,
		orderworkflows.OrderPlacedWorkflowInput{Event: toEvent(order), TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil
		}
		return err
	}
	return nil
}

// InlineOrderNotifications delivers notifications synchronously without
// Temporal, useful for tests or dev fallbacks.
type InlineOrderNotifications struct {
	service notificationsports.Service
}

// NewInlineOrderNotifications wraps the notifications service for synchronous delivery.
func NewInlineOrderNotifications(service notificationsports.Service) *InlineOrderNotifications {
	return &InlineOrderNotifications{service: service}
}

// OrderPlaced delegates to the notifications service without durable orchestration.
func (o *InlineOrderNotifications) OrderPlaced(ctx context.Context, order *domain.Order) error {
	if o == nil || o.service == nil {
		return errors.New("inline order notifications not configured")
	}
	return o.service.NotifyOrderPlaced(ctx, toEvent(order))
}

func toEvent(order *domain.Order) notificationsports.OrderPlacedEvent {
	event := notificationsports.OrderPlacedEvent{
		OrderID: order.ID,
		BuyerID: order.BuyerID,
	}
	for _, line := range order.Lines {
		event.Lines = append(event.Lines, notificationsports.OrderPlacedLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return event
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
