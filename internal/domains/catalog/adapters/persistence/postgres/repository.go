package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/myjhye/shop/internal/domains/catalog/domain"
	"github.com/myjhye/shop/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	SellerID    int64          `gorm:"column:seller_id;index"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"column:description"`
	Price       int64          `gorm:"column:price"`
	Stock       int            `gorm:"column:stock"`
	Category    string         `gorm:"column:category;index"`
	Images      pq.StringArray `gorm:"column:images;type:text[]"`
	Version     int            `gorm:"column:version"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	record := productRecord{
		SellerID:    product.SellerID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		Images:      pq.StringArray(product.Images),
		Version:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return toDomain(record), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return toDomain(record), nil
}

func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*domain.Product, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.SellerID > 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []productRecord
	if err := query.
		Order("created_at DESC, id DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Size).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	products := make([]*domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, toDomain(record))
	}
	return products, total, nil
}

// Update rewrites the product's details guarded by the observed version. Zero
// rows affected means a concurrent writer got there first.
func (r *Repository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ? AND version = ?", product.ID, product.Version).
		Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
			"category":    product.Category,
			"images":      pq.StringArray(product.Images),
			"version":     gorm.Expr("version + 1"),
			"updated_at":  gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var exists bool
		if err := r.db.WithContext(ctx).Raw(
			"SELECT EXISTS (SELECT 1 FROM products WHERE id = ?)", product.ID).
			Scan(&exists).Error; err != nil {
			return nil, err
		}
		if !exists {
			return nil, ports.ErrProductNotFound
		}
		return nil, ports.ErrVersionConflict
	}
	return r.GetByID(ctx, product.ID)
}

// Delete removes a product unless committed order lines reference it. The
// EXISTS check answers the common case; the order_lines foreign key enforces
// it even against a placement committing concurrently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var referenced bool
		if err := tx.Raw(
			"SELECT EXISTS (SELECT 1 FROM order_lines WHERE product_id = ?)", id).
			Scan(&referenced).Error; err != nil {
			return err
		}
		if referenced {
			return ports.ErrProductInUse
		}
		result := tx.Delete(&productRecord{}, "id = ?", id)
		if result.Error != nil {
			if isForeignKeyViolation(result.Error) {
				return ports.ErrProductInUse
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrProductNotFound
		}
		return nil
	})
}

// foreignKeyViolation is the PostgreSQL SQLSTATE raised by a restricted delete.
const foreignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toDomain(record productRecord) *domain.Product {
	return &domain.Product{
		ID:          record.ID,
		SellerID:    record.SellerID,
		Name:        record.Name,
		Description: record.Description,
		Price:       record.Price,
		Stock:       record.Stock,
		Category:    record.Category,
		Images:      []string(record.Images),
		Version:     record.Version,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
