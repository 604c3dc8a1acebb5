package ports

import "context"

// ProductChecker verifies a product exists before it enters a cart.
// Implemented by the catalog context.
type ProductChecker interface {
	ProductExists(ctx context.Context, productID int64) (bool, error)
}
