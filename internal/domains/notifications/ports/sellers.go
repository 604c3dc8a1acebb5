package ports

import "context"

// ProductSeller identifies who to notify about a sale of a product.
type ProductSeller struct {
	SellerID    int64
	ProductName string
}

// SellerDirectory resolves the seller behind a product. Implemented by the
// catalog context.
type SellerDirectory interface {
	Resolve(ctx context.Context, productID int64) (ProductSeller, error)
}
