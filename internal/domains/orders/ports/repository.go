package ports

import (
	"context"
	"errors"

	"github.com/myjhye/shop/internal/domains/orders/domain"
)

var (
	// ErrOrderNotFound signals a lookup for an order id that does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrProductNotFound signals a placement line referencing an unknown product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock signals the observed stock cannot satisfy the
	// requested quantity. Callers must not retry automatically.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrVersionConflict signals another writer committed a change to the
	// product since it was read. Callers may retry the whole placement.
	ErrVersionConflict = errors.New("product version conflict")
)

// Page bounds list queries.
type Page struct {
	Number int
	Size   int
}

// Offset converts the 1-based page number to a row offset.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Repository is the transactional boundary around order placement and the
// read side of the purchase history.
type Repository interface {
	// Place atomically builds and commits an order for buyerID. For each line,
	// in request order, it resolves the product, performs the conditional
	// stock decrement (version check), and freezes the current price into the
	// line item. Any failure rolls back every effect of the call.
	Place(ctx context.Context, buyerID int64, lines []domain.PlacementLine) (*domain.Order, error)

	// GetByID loads a committed order with its line items.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListByBuyer returns the buyer's committed orders, newest first, plus the
	// total count for pagination.
	ListByBuyer(ctx context.Context, buyerID int64, page Page) ([]*domain.Order, int64, error)

	// HasPurchased reports whether any committed order of the buyer contains a
	// line item for the product. Pure read over committed state.
	HasPurchased(ctx context.Context, buyerID, productID int64) (bool, error)
}
