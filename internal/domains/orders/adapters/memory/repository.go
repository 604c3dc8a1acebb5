package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/myjhye/shop/internal/domains/orders/domain"
	"github.com/myjhye/shop/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

type productState struct {
	price   int64
	stock   int
	version int
}

// Repository is an in-memory placement adapter. It mirrors the transactional
// contract of the PostgreSQL adapter: all line decrements and the order insert
// commit together or not at all.
type Repository struct {
	mu          sync.Mutex
	products    map[int64]*productState
	orders      map[int64]*domain.Order
	nextOrderID int64
	nextLineID  int64
}

func NewRepository() *Repository {
	return &Repository{
		products: map[int64]*productState{},
		orders:   map[int64]*domain.Order{},
	}
}

// SeedProduct registers a product with the given price and stock at version 0.
func (r *Repository) SeedProduct(id int64, price int64, stock int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[id] = &productState{price: price, stock: stock, version: 0}
}

// SyncProduct mirrors the live price and stock for a product, keeping the
// version history from earlier placements. Unknown products are seeded.
func (r *Repository) SyncProduct(id int64, price int64, stock int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.price = price
		p.stock = stock
		return
	}
	r.products[id] = &productState{price: price, stock: stock}
}

// RemoveProduct forgets a product so new placements for it report not found.
// Committed orders keep their frozen lines.
func (r *Repository) RemoveProduct(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
}

// SetProductPrice changes the live price without touching stock or version.
func (r *Repository) SetProductPrice(id int64, price int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		p.price = price
	}
}

// ProductStock reports the committed stock for a product.
func (r *Repository) ProductStock(id int64) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, false
	}
	return p.stock, true
}

// ProductVersion reports the committed version for a product.
func (r *Repository) ProductVersion(id int64) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, false
	}
	return p.version, true
}

// Place stages every decrement first and applies them only when the whole
// request fits, so a failing later line leaves earlier lines untouched.
func (r *Repository) Place(_ context.Context, buyerID int64, lines []domain.PlacementLine) (*domain.Order, error) {
	if err := domain.ValidatePlacement(buyerID, lines); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	staged := map[int64]int{}
	built := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		product, ok := r.products[line.ProductID]
		if !ok {
			return nil, ports.ErrProductNotFound
		}
		if product.stock-staged[line.ProductID]-line.Quantity < 0 {
			return nil, ports.ErrInsufficientStock
		}
		staged[line.ProductID] += line.Quantity
		built = append(built, domain.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: product.price,
		})
	}

	// Commit point: apply decrements, one version bump per decremented line.
	for _, line := range lines {
		product := r.products[line.ProductID]
		product.stock -= line.Quantity
		product.version++
	}
	r.nextOrderID++
	order := &domain.Order{
		ID:        r.nextOrderID,
		BuyerID:   buyerID,
		CreatedAt: time.Now().UTC(),
	}
	for _, line := range built {
		r.nextLineID++
		line.ID = r.nextLineID
		order.Lines = append(order.Lines, line)
	}
	r.orders[order.ID] = order

	clone := cloneOrder(order)
	return clone, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByBuyer(_ context.Context, buyerID int64, page ports.Page) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var owned []*domain.Order
	for _, order := range r.orders {
		if order.BuyerID == buyerID {
			owned = append(owned, order)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID > owned[j].ID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := int64(len(owned))
	start := page.Offset()
	if start >= len(owned) {
		return nil, total, nil
	}
	end := len(owned)
	if page.Size > 0 && start+page.Size < end {
		end = start + page.Size
	}
	result := make([]*domain.Order, 0, end-start)
	for _, order := range owned[start:end] {
		result = append(result, cloneOrder(order))
	}
	return result, total, nil
}

func (r *Repository) HasPurchased(_ context.Context, buyerID, productID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.BuyerID != buyerID {
			continue
		}
		for _, line := range order.Lines {
			if line.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Lines = append([]domain.OrderLine(nil), order.Lines...)
	return &clone
}
