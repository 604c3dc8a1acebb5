package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/myjhye/shop/internal/domains/orders/domain"
	"github.com/myjhye/shop/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Placement runs as one
// transaction; conflicts are detected optimistically via the product version
// column, never by acquiring locks ahead of time.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate root to a relational table.
type orderRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	BuyerID   int64     `gorm:"column:buyer_id;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// orderLineRecord maps one line item. UnitPrice is the frozen purchase-time
// price; nothing ever updates these rows after the insert.
type orderLineRecord struct {
	ID        int64 `gorm:"primaryKey;column:id"`
	OrderID   int64 `gorm:"column:order_id;index"`
	ProductID int64 `gorm:"column:product_id;index"`
	Quantity  int   `gorm:"column:quantity"`
	UnitPrice int64 `gorm:"column:unit_price"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// productRow is the orders context's read of the shared products table: just
// the columns the stock ledger needs.
type productRow struct {
	ID      int64
	Price   int64
	Stock   int
	Version int
}

// Place builds and commits the order aggregate in a single transaction.
//
// Per line, in request order: read the product's current stock/version/price,
// reject a shortfall, then decrement through a conditional update keyed on the
// observed version. Zero rows affected means another writer committed between
// our read and write, so the whole transaction aborts with a version conflict
// instead of silently overwriting the other decrement.
func (r *Repository) Place(ctx context.Context, buyerID int64, lines []domain.PlacementLine) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := domain.ValidatePlacement(buyerID, lines); err != nil {
		return nil, err
	}

	var saved *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		built := make([]orderLineRecord, 0, len(lines))
		for _, line := range lines {
			product, err := readProduct(tx, line.ProductID)
			if err != nil {
				return err
			}
			if product.Stock < line.Quantity {
				return ports.ErrInsufficientStock
			}
			if err := decrementStock(tx, line.ProductID, line.Quantity, product.Version); err != nil {
				return err
			}
			built = append(built, orderLineRecord{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}

		record := orderRecord{BuyerID: buyerID, CreatedAt: time.Now().UTC()}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for i := range built {
			built[i].OrderID = record.ID
		}
		if err := tx.Create(&built).Error; err != nil {
			return err
		}
		saved = toDomain(record, built)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func readProduct(tx *gorm.DB, productID int64) (productRow, error) {
	var product productRow
	err := tx.Table("products").
		Select("id", "price", "stock", "version").
		Where("id = ?", productID).
		Take(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return productRow{}, ports.ErrProductNotFound
	}
	if err != nil {
		return productRow{}, err
	}
	return product, nil
}

// decrementStock is the stock ledger operation: an atomic compare-and-swap on
// the product row. The version predicate makes a lost update structurally
// impossible; a stale version yields zero affected rows, not a blind write.
func decrementStock(tx *gorm.DB, productID int64, quantity, observedVersion int) error {
	result := tx.Table("products").
		Where("id = ? AND version = ?", productID, observedVersion).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock - ?", quantity),
			"version":    gorm.Expr("version + 1"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrVersionConflict
	}
	return nil
}

// GetByID fetches a committed order with its line items.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	lines, err := r.loadLines(ctx, []int64{record.ID})
	if err != nil {
		return nil, err
	}
	return toDomain(record, lines[record.ID]), nil
}

// ListByBuyer returns the buyer's orders, newest first, with the total count.
func (r *Repository) ListByBuyer(ctx context.Context, buyerID int64, page ports.Page) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("buyer_id = ?", buyerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	if len(records) == 0 {
		return nil, total, nil
	}

	ids := make([]int64, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	linesByOrder, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for _, record := range records {
		orders = append(orders, toDomain(record, linesByOrder[record.ID]))
	}
	return orders, total, nil
}

// HasPurchased answers the purchase history query with an EXISTS over the
// committed orders and their line items.
func (r *Repository) HasPurchased(ctx context.Context, buyerID, productID int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var exists bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM orders o
			JOIN order_lines l ON l.order_id = o.id
			WHERE o.buyer_id = ? AND l.product_id = ?
		)`, buyerID, productID).Scan(&exists).Error
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repository) loadLines(ctx context.Context, orderIDs []int64) (map[int64][]orderLineRecord, error) {
	var lines []orderLineRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[int64][]orderLineRecord, len(orderIDs))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}
	return byOrder, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toDomain(record orderRecord, lines []orderLineRecord) *domain.Order {
	order := &domain.Order{
		ID:        record.ID,
		BuyerID:   record.BuyerID,
		CreatedAt: record.CreatedAt,
	}
	for _, line := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return order
}
