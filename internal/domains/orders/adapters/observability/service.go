package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/myjhye/shop/internal/domains/orders/domain"
	ordersports "github.com/myjhye/shop/internal/domains/orders/ports"
)

const tracerName = "github.com/myjhye/shop/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, buyerID int64, lines []ordersdomain.PlacementLine) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(attribute.Int64("buyer.id", buyerID), attribute.Int("order.lines", len(lines))))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int64("buyer.id", buyerID), slog.Int("lines", len(lines)))
	result, err := s.inner.PlaceOrder(ctx, buyerID, lines)
	if err != nil {
		s.metrics.recordRejected(ctx, err)
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("buyer.id", buyerID))
	}
	s.metrics.recordPlaced(ctx, len(result.Lines))
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", result.ID), slog.Int64("buyer.id", buyerID),
		slog.Int64("order.total", result.Total()))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) ListMyOrders(ctx context.Context, buyerID int64, page ordersports.Page) ([]*ordersdomain.Order, int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListMyOrders",
		trace.WithAttributes(attribute.Int64("buyer.id", buyerID), attribute.Int("page.number", page.Number)))
	defer span.End()

	result, total, err := s.inner.ListMyOrders(ctx, buyerID, page)
	if err != nil {
		return nil, 0, s.handleError(ctx, span, err, "failed to list orders", slog.Int64("buyer.id", buyerID))
	}
	return result, total, nil
}

func (s *Service) HasPurchased(ctx context.Context, buyerID, productID int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.HasPurchased",
		trace.WithAttributes(attribute.Int64("buyer.id", buyerID), attribute.Int64("product.id", productID)))
	defer span.End()

	result, err := s.inner.HasPurchased(ctx, buyerID, productID)
	if err != nil {
		return false, s.handleError(ctx, span, err, "failed to check purchase history",
			slog.Int64("buyer.id", buyerID), slog.Int64("product.id", productID))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced    metric.Int64Counter
	ordersRejected  metric.Int64Counter
	linesPerOrder   metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders committed"))
	ordersRejected, _ := m.Int64Counter("orders.service.orders_rejected", metric.WithDescription("Number of placements rejected, by reason"))
	linesPerOrder, _ := m.Int64Histogram("orders.service.lines_per_order", metric.WithDescription("Line items per committed order"))
	return serviceMetrics{ordersPlaced: ordersPlaced, ordersRejected: ordersRejected, linesPerOrder: linesPerOrder}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, lines int) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.linesPerOrder != nil {
		m.linesPerOrder.Record(ctx, int64(lines))
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, err error) {
	if m.ordersRejected == nil {
		return
	}
	reason := "internal"
	switch {
	case errors.Is(err, ordersports.ErrInsufficientStock):
		reason = "insufficient_stock"
	case errors.Is(err, ordersports.ErrVersionConflict):
		reason = "conflict"
	case errors.Is(err, ordersports.ErrProductNotFound):
		reason = "product_not_found"
	}
	m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

var _ ordersports.Service = (*Service)(nil)
