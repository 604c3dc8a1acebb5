package api

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogports "github.com/myjhye/shop/internal/domains/catalog/ports"
	ordersdomain "github.com/myjhye/shop/internal/domains/orders/domain"
	ordersports "github.com/myjhye/shop/internal/domains/orders/ports"
)

func TestMemoryModeCatalogProductsAreOrderable(t *testing.T) {
	services := buildServices(Config{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	created, err := services.catalog.CreateProduct(ctx, 1, catalogports.CreateProductInput{
		Name:     "desk lamp",
		Price:    4500,
		Stock:    3,
		Category: "furniture",
	})
	require.NoError(t, err)

	order, err := services.ordersRepo.Place(ctx, 7, []ordersdomain.PlacementLine{
		{ProductID: created.ID, Quantity: 2},
	})
	require.NoError(t, err, "a product created through the catalog must be orderable without a database")
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(4500), order.Lines[0].UnitPrice)

	// Seller edits flow through to later placements.
	_, err = services.catalog.UpdateProduct(ctx, 1, created.ID, catalogports.UpdateProductInput{
		Name:     "desk lamp",
		Price:    3900,
		Stock:    5,
		Category: "furniture",
	})
	require.NoError(t, err)

	order, err = services.ordersRepo.Place(ctx, 7, []ordersdomain.PlacementLine{
		{ProductID: created.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3900), order.Lines[0].UnitPrice)

	require.NoError(t, services.catalog.DeleteProduct(ctx, 1, created.ID))
	_, err = services.ordersRepo.Place(ctx, 7, []ordersdomain.PlacementLine{
		{ProductID: created.ID, Quantity: 1},
	})
	assert.ErrorIs(t, err, ordersports.ErrProductNotFound)
}
