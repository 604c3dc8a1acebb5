package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/myjhye/shop/internal/domains/reviews/domain"
	"github.com/myjhye/shop/internal/domains/reviews/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists reviews in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type reviewRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	ProductID int64     `gorm:"column:product_id;index"`
	AuthorID  int64     `gorm:"column:author_id;index"`
	Rating    int       `gorm:"column:rating"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reviewRecord) TableName() string { return "reviews" }

func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	record := reviewRecord{
		ProductID: review.ProductID,
		AuthorID:  review.AuthorID,
		Rating:    review.Rating,
		Content:   review.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return toDomain(record), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record reviewRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrReviewNotFound
		}
		return nil, err
	}
	return toDomain(record), nil
}

func (r *Repository) ListByProduct(ctx context.Context, productID int64, page ports.Page) ([]*domain.Review, int64, error) {
	return r.list(ctx, "product_id = ?", productID, page)
}

func (r *Repository) ListByAuthor(ctx context.Context, authorID int64, page ports.Page) ([]*domain.Review, int64, error) {
	return r.list(ctx, "author_id = ?", authorID, page)
}

func (r *Repository) list(ctx context.Context, condition string, value int64, page ports.Page) ([]*domain.Review, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&reviewRecord{}).
		Where(condition, value).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []reviewRecord
	if err := r.db.WithContext(ctx).
		Where(condition, value).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	reviews := make([]*domain.Review, 0, len(records))
	for _, record := range records {
		reviews = append(reviews, toDomain(record))
	}
	return reviews, total, nil
}

func (r *Repository) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&reviewRecord{}).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"rating":     review.Rating,
			"content":    review.Content,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrReviewNotFound
	}
	return r.GetByID(ctx, review.ID)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&reviewRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrReviewNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres review repository not configured")
	}
	return nil
}

func toDomain(record reviewRecord) *domain.Review {
	return &domain.Review{
		ID:        record.ID,
		ProductID: record.ProductID,
		AuthorID:  record.AuthorID,
		Rating:    record.Rating,
		Content:   record.Content,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
