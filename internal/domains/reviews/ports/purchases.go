package ports

import "context"

// PurchaseChecker answers whether a user ever bought a product. Implemented by
// the orders context; review authorship is gated on it.
type PurchaseChecker interface {
	HasPurchased(ctx context.Context, buyerID, productID int64) (bool, error)
}
