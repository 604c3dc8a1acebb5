package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&productRecord{},
		&cartItemRecord{},
		&orderRecord{},
		&orderLineRecord{},
		&reviewRecord{},
		&notificationRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Username  string    `gorm:"column:username"`
	Password  string    `gorm:"column:password_hash"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    int64      `gorm:"column:user_id;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Product schema mirrors the catalog Postgres adapter. The version column
// backs optimistic concurrency for stock decrements and detail updates.
type productRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	SellerID    int64          `gorm:"column:seller_id;index"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"column:description"`
	Price       int64          `gorm:"column:price"`
	Stock       int            `gorm:"column:stock"`
	Category    string         `gorm:"column:category;index"`
	Images      pq.StringArray `gorm:"column:images;type:text[]"`
	Version     int            `gorm:"column:version;not null;default:0"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Cart schema mirrors the cart Postgres adapter. The unique pair index backs
// the add-or-accumulate upsert.
type cartItemRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	UserID    int64     `gorm:"column:user_id;index:idx_cart_user_product,unique"`
	ProductID int64     `gorm:"column:product_id;index:idx_cart_user_product,unique"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	BuyerID   int64     `gorm:"column:buyer_id;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// Order lines carry the frozen purchase-time unit price. The product foreign
// key restricts deletes, so a referenced product cannot disappear under a
// committed line.
type orderLineRecord struct {
	ID        int64         `gorm:"primaryKey;column:id"`
	OrderID   int64         `gorm:"column:order_id;index"`
	ProductID int64         `gorm:"column:product_id;index"`
	Quantity  int           `gorm:"column:quantity"`
	UnitPrice int64         `gorm:"column:unit_price"`
	Product   productRecord `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// Review schema mirrors the reviews Postgres adapter.
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

// Notification schema mirrors the notifications Postgres adapter.
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
