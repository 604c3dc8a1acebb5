package application

import (
	"context"
	"log/slog"

	"github.com/myjhye/shop/internal/domains/reviews/domain"
	"github.com/myjhye/shop/internal/domains/reviews/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service implements review use cases. Authorship requires a purchase of the
// reviewed product; edits and deletes stay with the author.
type Service struct {
	repo      ports.Repository
	purchases ports.PurchaseChecker
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, purchases ports.PurchaseChecker, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		purchases: purchases,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) CreateReview(ctx context.Context, authorID, productID int64, rating int, content string) (*domain.Review, error) {
	review, err := domain.NewReview(productID, authorID, rating, content)
	if err != nil {
		return nil, mapError(err)
	}
	purchased, err := s.purchases.HasPurchased(ctx, authorID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrNotPurchased
	}
	saved, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	s.logger.Info("review created",
		slog.Int64("review.id", saved.ID), slog.Int64("product.id", productID),
		slog.Int64("author.id", authorID))
	return saved, nil
}

func (s *Service) ListProductReviews(ctx context.Context, productID int64, page ports.Page) ([]*domain.Review, int64, error) {
	return s.repo.ListByProduct(ctx, productID, normalize(page))
}

func (s *Service) ListMyReviews(ctx context.Context, authorID int64, page ports.Page) ([]*domain.Review, int64, error) {
	return s.repo.ListByAuthor(ctx, authorID, normalize(page))
}

func (s *Service) UpdateReview(ctx context.Context, authorID, id int64, rating int, content string) (*domain.Review, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.AuthoredBy(authorID) {
		return nil, ErrNotAuthor
	}
	current.Rating = rating
	current.Content = content
	if err := current.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, current)
}

func (s *Service) DeleteReview(ctx context.Context, authorID, id int64) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !current.AuthoredBy(authorID) {
		return ErrNotAuthor
	}
	return s.repo.Delete(ctx, id)
}

func normalize(page ports.Page) ports.Page {
	if page.Size <= 0 {
		page.Size = defaultPageSize
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}
	if page.Number <= 0 {
		page.Number = 1
	}
	return page
}

var _ ports.Service = (*Service)(nil)
