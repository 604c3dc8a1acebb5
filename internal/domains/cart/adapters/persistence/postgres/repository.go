package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/myjhye/shop/internal/domains/cart/domain"
	"github.com/myjhye/shop/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists cart items in PostgreSQL using GORM. The table carries a
// unique (user_id, product_id) index; Add leans on it to accumulate quantity.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type cartItemRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;index:idx_cart_user_product,unique"`
	ProductID int64     `gorm:"column:product_id;index:idx_cart_user_product,unique"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

func (r *Repository) Add(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	record := cartItemRecord{
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}

	var stored cartItemRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		Take(&stored).Error; err != nil {
		return nil, err
	}
	return toDomain(stored), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartItemRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.CartItem, 0, len(records))
	for _, record := range records {
		items = append(items, toDomain(record))
	}
	return items, nil
}

func (r *Repository) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&cartItemRecord{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]any{
			"quantity":   quantity,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrCartItemNotFound
	}

	var stored cartItemRecord
	if err := r.db.WithContext(ctx).Take(&stored, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return toDomain(stored), nil
}

func (r *Repository) Remove(ctx context.Context, userID, itemID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Delete(&cartItemRecord{}, "id = ? AND user_id = ?", itemID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrCartItemNotFound
	}
	return nil
}

func (r *Repository) RemoveByProducts(ctx context.Context, userID int64, productIDs []int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Delete(&cartItemRecord{}, "user_id = ? AND product_id IN ?", userID, productIDs).Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func toDomain(record cartItemRecord) *domain.CartItem {
	return &domain.CartItem{
		ID:        record.ID,
		UserID:    record.UserID,
		ProductID: record.ProductID,
		Quantity:  record.Quantity,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
