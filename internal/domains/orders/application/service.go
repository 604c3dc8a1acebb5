package application

import (
	"context"
	"log/slog"

	"github.com/myjhye/shop/internal/domains/orders/domain"
	"github.com/myjhye/shop/internal/domains/orders/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service orchestrates order placement: it owns the transaction boundary and
// the post-commit cart reconciliation and seller notification.
type Service struct {
	repo     ports.Repository
	carts    ports.CartReconciler
	notifier ports.PlacementNotifier
	logger   *slog.Logger
}

type Option func(*Service)

// WithCartReconciler wires the cart context for post-commit cleanup.
func WithCartReconciler(carts ports.CartReconciler) Option {
	return func(s *Service) {
		if carts != nil {
			s.carts = carts
		}
	}
}

// WithNotifier wires the post-commit seller notification orchestrator.
func WithNotifier(notifier ports.PlacementNotifier) Option {
	return func(s *Service) {
		if notifier != nil {
			s.notifier = notifier
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		carts:    ports.NoopCartReconciler,
		notifier: ports.NoopPlacementNotifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder converts the requested lines into a committed order. The
// repository performs the whole build-and-decrement transaction; a Conflict is
// surfaced to the caller rather than retried here, so a genuine "someone else
// bought the last unit" outcome stays visible to the buyer.
func (s *Service) PlaceOrder(ctx context.Context, buyerID int64, lines []domain.PlacementLine) (*domain.Order, error) {
	if err := domain.ValidatePlacement(buyerID, lines); err != nil {
		return nil, mapError(err)
	}
	order, err := s.repo.Place(ctx, buyerID, lines)
	if err != nil {
		return nil, mapError(err)
	}

	// Post-commit, best-effort: cart entries are advisory, so a failed or
	// already-absent removal must not fail the committed placement.
	if err := s.carts.RemovePurchased(ctx, buyerID, order.ProductIDs()); err != nil {
		s.logger.Warn("cart reconciliation failed after order commit",
			slog.Int64("order.id", order.ID), slog.Int64("buyer.id", buyerID),
			slog.String("error", err.Error()))
	}
	if err := s.notifier.OrderPlaced(ctx, order); err != nil {
		s.logger.Warn("seller notification failed after order commit",
			slog.Int64("order.id", order.ID), slog.String("error", err.Error()))
	}
	return order, nil
}

// GetOrderByID loads a committed order.
func (s *Service) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListMyOrders pages through the buyer's order history, newest first.
func (s *Service) ListMyOrders(ctx context.Context, buyerID int64, page ports.Page) ([]*domain.Order, int64, error) {
	if page.Size <= 0 {
		page.Size = defaultPageSize
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}
	if page.Number <= 0 {
		page.Number = 1
	}
	return s.repo.ListByBuyer(ctx, buyerID, page)
}

// HasPurchased reports whether the buyer ever ordered the product. Consumed
// by the reviews context to gate review authorship.
func (s *Service) HasPurchased(ctx context.Context, buyerID, productID int64) (bool, error) {
	return s.repo.HasPurchased(ctx, buyerID, productID)
}

var _ ports.Service = (*Service)(nil)
