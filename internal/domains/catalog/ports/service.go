package ports

import (
	"context"

	"github.com/myjhye/shop/internal/domains/catalog/domain"
)

// CreateProductInput carries the seller-supplied product details.
type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	Category    string
	Images      []string
}

// UpdateProductInput is a full rewrite of the mutable product details.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	Category    string
	Images      []string
}

type Service interface {
	CreateProduct(ctx context.Context, sellerID int64, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context, filter Filter) ([]*domain.Product, int64, error)
	// UpdateProduct rewrites a product the caller owns.
	UpdateProduct(ctx context.Context, sellerID, id int64, input UpdateProductInput) (*domain.Product, error)
	// DeleteProduct removes a product the caller owns.
	DeleteProduct(ctx context.Context, sellerID, id int64) error
}
