package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/myjhye/shop/internal/domains/notifications/domain"
	"github.com/myjhye/shop/internal/domains/notifications/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service fans committed orders out into seller notifications and serves the
// recipient-facing listing.
type Service struct {
	repo    ports.Repository
	sellers ports.SellerDirectory
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, sellers ports.SellerDirectory, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		sellers: sellers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NotifyOrderPlaced creates one notification per sold product. A product whose
// seller cannot be resolved is skipped with a warning; the remaining lines are
// still delivered.
func (s *Service) NotifyOrderPlaced(ctx context.Context, event ports.OrderPlacedEvent) error {
	if s.sellers == nil {
		return fmt.Errorf("seller directory not configured")
	}
	quantities := make(map[int64]int, len(event.Lines))
	order := make([]int64, 0, len(event.Lines))
	for _, line := range event.Lines {
		if _, seen := quantities[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	for _, productID := range order {
		seller, err := s.sellers.Resolve(ctx, productID)
		if err != nil {
			s.logger.Warn("skipping seller notification, product unresolved",
				slog.Int64("order.id", event.OrderID), slog.Int64("product.id", productID),
				slog.String("error", err.Error()))
			continue
		}
		quantity := quantities[productID]
		message := fmt.Sprintf("%q sold: %d unit(s) in order #%d", seller.ProductName, quantity, event.OrderID)
		notification, err := domain.NewNotification(seller.SellerID, event.OrderID, productID, quantity, message)
		if err != nil {
			return err
		}
		if _, err := s.repo.Create(ctx, notification); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ListMyNotifications(ctx context.Context, userID int64, page ports.Page) ([]*domain.Notification, int64, error) {
	if page.Size <= 0 {
		page.Size = defaultPageSize
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}
	if page.Number <= 0 {
		page.Number = 1
	}
	return s.repo.ListByUser(ctx, userID, page)
}

func (s *Service) MarkRead(ctx context.Context, userID, id int64) error {
	return s.repo.MarkRead(ctx, userID, id)
}

var _ ports.Service = (*Service)(nil)
