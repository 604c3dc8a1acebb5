package application

import (
	"context"
	"log/slog"

	"github.com/myjhye/shop/internal/domains/cart/domain"
	"github.com/myjhye/shop/internal/domains/cart/ports"
)

// Service implements cart use cases. Every mutation is scoped to the calling
// user; items belonging to others are indistinguishable from absent ones.
type Service struct {
	repo     ports.Repository
	products ports.ProductChecker
	logger   *slog.Logger
}

type Option func(*Service)

func WithProductChecker(products ports.ProductChecker) Option {
	return func(s *Service) {
		if products != nil {
			s.products = products
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*domain.CartItem, error) {
	item, err := domain.NewCartItem(userID, productID, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	if s.products != nil {
		exists, err := s.products.ProductExists(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrProductNotFound
		}
	}
	return s.repo.Add(ctx, item)
}

func (s *Service) ListCart(ctx context.Context, userID int64) ([]*domain.CartItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, mapError(domain.ErrInvalidQuantity)
	}
	return s.repo.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return s.repo.Remove(ctx, userID, itemID)
}

// RemovePurchased clears the user's cart entries for the given products. Used
// by the orders context after a placement commits.
func (s *Service) RemovePurchased(ctx context.Context, userID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	if err := s.repo.RemoveByProducts(ctx, userID, productIDs); err != nil {
		return err
	}
	s.logger.Debug("cart reconciled after purchase",
		slog.Int64("user.id", userID), slog.Int("products", len(productIDs)))
	return nil
}

var _ ports.Service = (*Service)(nil)
