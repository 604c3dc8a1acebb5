//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/myjhye/shop/internal/domains/catalog/domain"
	"github.com/myjhye/shop/internal/domains/catalog/ports"
	"github.com/myjhye/shop/internal/platform/migrations"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shop_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func catalogFixture(t *testing.T) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(50, "desk lamp", "warm white",
		4500, 3, "furniture", []string{"https://img.example/lamp.jpg"})
	require.NoError(t, err)
	return product
}

func TestRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, catalogFixture(t))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 0, created.Version)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "desk lamp", fetched.Name)
	assert.Equal(t, []string{"https://img.example/lamp.jpg"}, fetched.Images)

	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestRepository_UpdateGuardedByVersion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, catalogFixture(t))
	require.NoError(t, err)

	first := *created
	first.Price = 4900
	updated, err := repo.Update(ctx, &first)
	require.NoError(t, err)
	assert.Equal(t, created.Version+1, updated.Version)
	assert.Equal(t, int64(4900), updated.Price)

	// Second writer still carries the stale version.
	second := *created
	second.Price = 3900
	_, err = repo.Update(ctx, &second)
	require.ErrorIs(t, err, ports.ErrVersionConflict)

	missing := *created
	missing.ID = 404
	_, err = repo.Update(ctx, &missing)
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestRepository_UpdateConflictsWithStockDecrement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, catalogFixture(t))
	require.NoError(t, err)

	// An order placement bumps the version out from under the seller's edit.
	err = db.Exec(`UPDATE products SET stock = stock - 1, version = version + 1 WHERE id = ?`, created.ID).Error
	require.NoError(t, err)

	edit := *created
	edit.Stock = 10
	_, err = repo.Update(ctx, &edit)
	require.ErrorIs(t, err, ports.ErrVersionConflict,
		"a stale edit must not resurrect stock sold in between")
}

func TestRepository_DeleteBlockedByOrderLines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, catalogFixture(t))
	require.NoError(t, err)

	err = db.Exec(`INSERT INTO orders (buyer_id, created_at) VALUES (7, NOW())`).Error
	require.NoError(t, err)
	err = db.Exec(`
		INSERT INTO order_lines (order_id, product_id, quantity, unit_price)
		SELECT id, ?, 1, 4500 FROM orders LIMIT 1`, created.ID).Error
	require.NoError(t, err)

	require.ErrorIs(t, repo.Delete(ctx, created.ID), ports.ErrProductInUse)

	_, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err, "blocked delete must leave the product intact")

	require.NoError(t, db.Exec(`DELETE FROM order_lines`).Error)
	require.NoError(t, repo.Delete(ctx, created.ID))
	require.ErrorIs(t, repo.Delete(ctx, created.ID), ports.ErrProductNotFound)
}

func TestRepository_DeleteRestrictedByForeignKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, catalogFixture(t))
	require.NoError(t, err)

	err = db.Exec(`INSERT INTO orders (buyer_id, created_at) VALUES (7, NOW())`).Error
	require.NoError(t, err)
	err = db.Exec(`
		INSERT INTO order_lines (order_id, product_id, quantity, unit_price)
		SELECT id, ?, 1, 4500 FROM orders LIMIT 1`, created.ID).Error
	require.NoError(t, err)

	// Delete straight at the table, bypassing the repository's EXISTS check.
	// The schema itself must keep the referenced product in place.
	err = db.Exec(`DELETE FROM products WHERE id = ?`, created.ID).Error
	require.Error(t, err)
	assert.True(t, isForeignKeyViolation(err), "restricted delete must surface as product-in-use")

	_, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
}

func TestRepository_ListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	for _, spec := range []struct {
		seller   int64
		name     string
		category string
	}{
		{50, "mechanical keyboard", "electronics"},
		{50, "office chair", "furniture"},
		{51, "gaming KEYBOARD", "electronics"},
	} {
		product, err := domain.NewProduct(spec.seller, spec.name, "", 1000, 1, spec.category, nil)
		require.NoError(t, err)
		_, err = repo.Create(ctx, product)
		require.NoError(t, err)
	}

	_, total, err := repo.List(ctx, ports.Filter{Page: ports.Page{Number: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	products, total, err := repo.List(ctx, ports.Filter{Keyword: "keyboard", Page: ports.Page{Number: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "keyword match is case-insensitive")
	assert.Len(t, products, 2)

	_, total, err = repo.List(ctx, ports.Filter{Category: "furniture", Page: ports.Page{Number: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.List(ctx, ports.Filter{SellerID: 51, Page: ports.Page{Number: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
