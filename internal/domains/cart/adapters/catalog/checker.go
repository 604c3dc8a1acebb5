package catalog

import (
	"context"
	"errors"

	catalogports "github.com/myjhye/shop/internal/domains/catalog/ports"
	"github.com/myjhye/shop/internal/domains/cart/ports"
)

var _ ports.ProductChecker = (*Checker)(nil)

// Checker answers product existence through the catalog context.
type Checker struct {
	catalog catalogports.Service
}

func NewChecker(catalog catalogports.Service) *Checker {
	return &Checker{catalog: catalog}
}

func (c *Checker) ProductExists(ctx context.Context, productID int64) (bool, error) {
	_, err := c.catalog.GetProduct(ctx, productID)
	if errors.Is(err, catalogports.ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
