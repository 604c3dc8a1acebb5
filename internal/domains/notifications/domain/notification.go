package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidRecipient = errors.New("notification recipient is required")
	ErrEmptyMessage     = errors.New("notification message is required")
)

// Notification tells a seller that one of their products was purchased.
type Notification struct {
	ID        int64
	UserID    int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Message   string
	Read      bool
	CreatedAt time.Time
}

func NewNotification(userID, orderID, productID int64, quantity int, message string) (*Notification, error) {
	n := &Notification{
		UserID:    userID,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Message:   strings.TrimSpace(message),
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notification) Validate() error {
	if n.UserID <= 0 {
		return ErrInvalidRecipient
	}
	if n.Message == "" {
		return ErrEmptyMessage
	}
	return nil
}
