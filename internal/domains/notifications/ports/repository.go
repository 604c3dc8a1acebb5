package ports

import (
	"context"
	"errors"

	"github.com/myjhye/shop/internal/domains/notifications/domain"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Page selects one slice of a notification listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

type Repository interface {
	Create(ctx context.Context, notification *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, page Page) ([]*domain.Notification, int64, error)
	// MarkRead flips the read flag on a notification owned by userID.
	MarkRead(ctx context.Context, userID, id int64) error
}
