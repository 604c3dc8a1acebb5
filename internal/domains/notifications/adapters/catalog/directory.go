package catalog

import (
	"context"

	catalogports "github.com/myjhye/shop/internal/domains/catalog/ports"
	"github.com/myjhye/shop/internal/domains/notifications/ports"
)

var _ ports.SellerDirectory = (*Directory)(nil)

// Directory resolves product sellers through the catalog context.
type Directory struct {
	catalog catalogports.Service
}

func NewDirectory(catalog catalogports.Service) *Directory {
	return &Directory{catalog: catalog}
}

func (d *Directory) Resolve(ctx context.Context, productID int64) (ports.ProductSeller, error) {
	product, err := d.catalog.GetProduct(ctx, productID)
	if err != nil {
		return ports.ProductSeller{}, err
	}
	return ports.ProductSeller{SellerID: product.SellerID, ProductName: product.Name}, nil
}
