package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/myjhye/shop/internal/domains/notifications/domain"
	"github.com/myjhye/shop/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists seller notifications in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type notificationRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;index"`
	OrderID   int64     `gorm:"column:order_id"`
	ProductID int64     `gorm:"column:product_id"`
	Quantity  int       `gorm:"column:quantity"`
	Message   string    `gorm:"column:message"`
	Read      bool      `gorm:"column:read"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (notificationRecord) TableName() string { return "notifications" }

func (r *Repository) Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := notification.Validate(); err != nil {
		return nil, err
	}
	record := notificationRecord{
		UserID:    notification.UserID,
		OrderID:   notification.OrderID,
		ProductID: notification.ProductID,
		Quantity:  notification.Quantity,
		Message:   notification.Message,
		Read:      notification.Read,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return toDomain(record), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, page ports.Page) ([]*domain.Notification, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&notificationRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []notificationRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	notifications := make([]*domain.Notification, 0, len(records))
	for _, record := range records {
		notifications = append(notifications, toDomain(record))
	}
	return notifications, total, nil
}

func (r *Repository) MarkRead(ctx context.Context, userID, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&notificationRecord{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotificationNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres notification repository not configured")
	}
	return nil
}

func toDomain(record notificationRecord) *domain.Notification {
	return &domain.Notification{
		ID:        record.ID,
		UserID:    record.UserID,
		OrderID:   record.OrderID,
		ProductID: record.ProductID,
		Quantity:  record.Quantity,
		Message:   record.Message,
		Read:      record.Read,
		CreatedAt: record.CreatedAt,
	}
}
