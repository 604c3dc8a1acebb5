//go:build integration

package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/myjhye/shop/internal/domains/orders/domain"
	"github.com/myjhye/shop/internal/domains/orders/ports"
	"github.com/myjhye/shop/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func seedProduct(t *testing.T, db *gorm.DB, id, sellerID, price int64, stock int) {
	t.Helper()
	err := db.Exec(`
		INSERT INTO products (id, seller_id, name, description, price, stock, category, version, created_at, updated_at)
		VALUES (?, ?, ?, '', ?, ?, 'electronics', 0, NOW(), NOW())`,
		id, sellerID, "product under test", price, stock).Error
	require.NoError(t, err)
}

func productState(t *testing.T, db *gorm.DB, id int64) (stock, version int) {
	t.Helper()
	row := struct {
		Stock   int
		Version int
	}{}
	err := db.Table("products").Select("stock", "version").Where("id = ?", id).Take(&row).Error
	require.NoError(t, err)
	return row.Stock, row.Version
}

func TestRepository_PlaceCommitsOrderWithFrozenPrices(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedProduct(t, db, 1, 50, 1500, 10)
	seedProduct(t, db, 2, 50, 300, 5)

	order, err := repo.Place(ctx, 7, []domain.PlacementLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, int64(1500), order.Lines[0].UnitPrice)
	assert.Equal(t, int64(3300), order.Total())

	stock, version := productState(t, db, 1)
	assert.Equal(t, 8, stock)
	assert.Equal(t, 1, version)

	// Raising the live price must not change the committed line.
	err = db.Exec(`UPDATE products SET price = 9900 WHERE id = 1`).Error
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), fetched.Lines[0].UnitPrice)
}

func TestRepository_PlaceRejectsShortfallAndRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedProduct(t, db, 1, 50, 100, 2)
	seedProduct(t, db, 2, 50, 200, 1)

	_, err := repo.Place(ctx, 7, []domain.PlacementLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	stock, version := productState(t, db, 1)
	assert.Equal(t, 2, stock, "first line decrement must be rolled back")
	assert.Equal(t, 0, version)

	var orderCount int64
	require.NoError(t, db.Table("orders").Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestRepository_PlaceUnknownProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)

	_, err := repo.Place(context.Background(), 7, []domain.PlacementLine{{ProductID: 404, Quantity: 1}})
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestRepository_ConcurrentPlacementsNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedProduct(t, db, 1, 50, 100, 5)

	const buyers = 10
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Place(ctx, int64(i+1), []domain.PlacementLine{{ProductID: 1, Quantity: 1}})
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		// Losers see either outcome depending on when they read the row.
		require.True(t, errors.Is(err, ports.ErrVersionConflict) || errors.Is(err, ports.ErrInsufficientStock),
			"unexpected error: %v", err)
	}
	assert.LessOrEqual(t, successes, 5)
	assert.GreaterOrEqual(t, successes, 1)

	stock, version := productState(t, db, 1)
	assert.Equal(t, 5-successes, stock)
	assert.Equal(t, successes, version)
	assert.GreaterOrEqual(t, stock, 0, "stock must never go negative")
}

func TestRepository_ListByBuyerNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedProduct(t, db, 1, 50, 100, 100)

	var ids []int64
	for i := 0; i < 3; i++ {
		order, err := repo.Place(ctx, 7, []domain.PlacementLine{{ProductID: 1, Quantity: 1}})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}
	_, err := repo.Place(ctx, 8, []domain.PlacementLine{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	orders, total, err := repo.ListByBuyer(ctx, 7, ports.Page{Number: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[1], orders[1].ID)

	orders, _, err = repo.ListByBuyer(ctx, 7, ports.Page{Number: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, ids[0], orders[0].ID)
}

func TestRepository_HasPurchased(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedProduct(t, db, 1, 50, 100, 10)
	seedProduct(t, db, 2, 50, 100, 10)

	_, err := repo.Place(ctx, 7, []domain.PlacementLine{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	purchased, err := repo.HasPurchased(ctx, 7, 1)
	require.NoError(t, err)
	assert.True(t, purchased)

	purchased, err = repo.HasPurchased(ctx, 7, 2)
	require.NoError(t, err)
	assert.False(t, purchased)

	purchased, err = repo.HasPurchased(ctx, 8, 1)
	require.NoError(t, err)
	assert.False(t, purchased)
}
