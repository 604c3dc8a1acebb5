package api

import (
	"context"

	catalogdomain "github.com/myjhye/shop/internal/domains/catalog/domain"
	catalogports "github.com/myjhye/shop/internal/domains/catalog/ports"
	ordersmemory "github.com/myjhye/shop/internal/domains/orders/adapters/memory"
)

var _ catalogports.Repository = (*mirroringCatalogRepository)(nil)

// mirroringCatalogRepository keeps the in-memory order ledger's product view in
// step with catalog writes. In PostgreSQL mode both contexts share the products
// table; without a database the ledger has to be fed explicitly, or nothing
// created through the API would be orderable.
type mirroringCatalogRepository struct {
	catalogports.Repository
	orders *ordersmemory.Repository
}

func newMirroringCatalogRepository(inner catalogports.Repository, orders *ordersmemory.Repository) *mirroringCatalogRepository {
	return &mirroringCatalogRepository{Repository: inner, orders: orders}
}

func (r *mirroringCatalogRepository) Create(ctx context.Context, product *catalogdomain.Product) (*catalogdomain.Product, error) {
	created, err := r.Repository.Create(ctx, product)
	if err == nil {
		r.orders.SeedProduct(created.ID, created.Price, created.Stock)
	}
	return created, err
}

func (r *mirroringCatalogRepository) Update(ctx context.Context, product *catalogdomain.Product) (*catalogdomain.Product, error) {
	updated, err := r.Repository.Update(ctx, product)
	if err == nil {
		r.orders.SyncProduct(updated.ID, updated.Price, updated.Stock)
	}
	return updated, err
}

func (r *mirroringCatalogRepository) Delete(ctx context.Context, id int64) error {
	err := r.Repository.Delete(ctx, id)
	if err == nil {
		r.orders.RemoveProduct(id)
	}
	return err
}
