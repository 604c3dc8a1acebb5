package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/myjhye/shop/internal/domains/users/domain"
	"github.com/myjhye/shop/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists user accounts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Username  string    `gorm:"column:username"`
	Password  string    `gorm:"column:password_hash"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userRecord) TableName() string { return "users" }

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	var taken int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).
		Where("email = ?", user.Email).
		Count(&taken).Error; err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ports.ErrEmailTaken
	}

	record := userRecord{
		Email:     user.Email,
		Username:  user.Username,
		Password:  user.Password,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Email:     r.Email,
		Username:  r.Username,
		Password:  r.Password,
		CreatedAt: r.CreatedAt,
	}
}
