package mapper

import (
	"time"

	catalogdomain "github.com/myjhye/shop/internal/domains/catalog/domain"
)

// Product represents the transport-level product payload. Version is exposed
// so clients can reason about concurrent updates.
type Product struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"sellerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromDomainProduct converts a domain product into a transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	images := product.Images
	if images == nil {
		images = []string{}
	}
	return Product{
		ID:          product.ID,
		SellerID:    product.SellerID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category,
		Images:      images,
		Version:     product.Version,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// FromDomainProducts converts a slice of domain products to transport representation.
func FromDomainProducts(products []*catalogdomain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromDomainProduct(product))
	}
	return result
}
