package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidSeller   = errors.New("product seller is required")
	ErrInvalidName     = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("product price must not be negative")
	ErrInvalidStock    = errors.New("product stock must not be negative")
	ErrInvalidCategory = errors.New("product category is required")
)

// Product is the catalog aggregate. Version changes on every stock or detail
// mutation and backs optimistic concurrency across contexts.
type Product struct {
	ID          int64
	SellerID    int64
	Name        string
	Description string
	Price       int64
	Stock       int
	Category    string
	Images      []string
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProduct(sellerID int64, name, description string, price int64, stock int, category string, images []string) (*Product, error) {
	p := &Product{
		SellerID:    sellerID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Stock:       stock,
		Category:    strings.TrimSpace(category),
		Images:      images,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p.SellerID <= 0 {
		return ErrInvalidSeller
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	if p.Category == "" {
		return ErrInvalidCategory
	}
	return nil
}

// OwnedBy reports whether userID is the product's seller.
func (p *Product) OwnedBy(userID int64) bool {
	return p.SellerID == userID
}
