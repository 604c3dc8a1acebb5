package application

import (
	"context"
	"log/slog"

	"github.com/myjhye/shop/internal/domains/catalog/domain"
	"github.com/myjhye/shop/internal/domains/catalog/ports"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// Service implements catalog use cases. Mutations are seller-scoped; anyone
// may read.
type Service struct {
	repo   ports.Repository
	logger *slog.Logger
}

type Option func(*Service)

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

func (s *Service) CreateProduct(ctx context.Context, sellerID int64, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(sellerID, input.Name, input.Description, input.Price, input.Stock, input.Category, input.Images)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product created",
		slog.Int64("product.id", saved.ID), slog.Int64("seller.id", sellerID))
	return saved, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filter ports.Filter) ([]*domain.Product, int64, error) {
	if filter.Page.Size <= 0 {
		filter.Page.Size = defaultPageSize
	}
	if filter.Page.Size > maxPageSize {
		filter.Page.Size = maxPageSize
	}
	if filter.Page.Number <= 0 {
		filter.Page.Number = 1
	}
	return s.repo.List(ctx, filter)
}

// UpdateProduct rewrites the product's details. The update carries the version
// observed here, so a concurrent stock decrement between read and write
// surfaces as a conflict instead of resurrecting stale stock.
func (s *Service) UpdateProduct(ctx context.Context, sellerID, id int64, input ports.UpdateProductInput) (*domain.Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.OwnedBy(sellerID) {
		return nil, ErrNotOwner
	}

	current.Name = input.Name
	current.Description = input.Description
	current.Price = input.Price
	current.Stock = input.Stock
	current.Category = input.Category
	current.Images = input.Images
	if err := current.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, current)
}

func (s *Service) DeleteProduct(ctx context.Context, sellerID, id int64) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !current.OwnedBy(sellerID) {
		return ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted",
		slog.Int64("product.id", id), slog.Int64("seller.id", sellerID))
	return nil
}

var _ ports.Service = (*Service)(nil)
