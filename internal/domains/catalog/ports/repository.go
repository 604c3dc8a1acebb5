package ports

import (
	"context"
	"errors"

	"github.com/myjhye/shop/internal/domains/catalog/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrVersionConflict signals a concurrent writer changed the product
	// between read and update.
	ErrVersionConflict = errors.New("product version conflict")
	// ErrProductInUse blocks deleting a product referenced by committed orders.
	ErrProductInUse = errors.New("product referenced by orders")
)

// Page selects one slice of a product listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Filter narrows a product listing. Zero values mean "no constraint".
type Filter struct {
	Keyword  string
	Category string
	SellerID int64
	Page     Page
}

type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter Filter) ([]*domain.Product, int64, error)
	// Update rewrites the product's details conditionally on product.Version
	// and bumps the version on success.
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
