package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrEmptyOrder       = errors.New("order must contain at least one line item")
	ErrInvalidBuyer     = errors.New("buyer id must be greater than zero")
)

// PlacementLine is one (product, quantity) pair of a placement request.
// Lines are processed strictly in request order.
type PlacementLine struct {
	ProductID int64
	Quantity  int
}

// Validate enforces the per-line request invariants.
func (l PlacementLine) Validate() error {
	if l.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidatePlacement checks a whole placement request before any stock is touched.
func ValidatePlacement(buyerID int64, lines []PlacementLine) error {
	if buyerID <= 0 {
		return ErrInvalidBuyer
	}
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// OrderLine is one product/quantity/price entry within a committed order.
// UnitPrice is the product price frozen at the instant of purchase; it is
// never recomputed from the live product.
type OrderLine struct {
	ID        int64
	ProductID int64
	Quantity  int
	UnitPrice int64
}

// NewOrderLine snapshots the given unit price into an immutable line item.
func NewOrderLine(productID int64, quantity int, unitPrice int64) (OrderLine, error) {
	line := OrderLine{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}
	if productID <= 0 {
		return OrderLine{}, ErrInvalidProductID
	}
	if quantity <= 0 {
		return OrderLine{}, ErrInvalidQuantity
	}
	return line, nil
}

// Subtotal returns the frozen price times quantity for this line.
func (l OrderLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Order models the committed purchase aggregate. Once committed an order and
// its line items are immutable; no update or delete operations exist.
type Order struct {
	ID        int64
	BuyerID   int64
	Lines     []OrderLine
	CreatedAt time.Time
}

// NewOrder assembles an order aggregate, preserving line order from the request.
func NewOrder(buyerID int64, lines []OrderLine) (*Order, error) {
	if buyerID <= 0 {
		return nil, ErrInvalidBuyer
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	order := &Order{BuyerID: buyerID, Lines: lines}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.BuyerID <= 0 {
		return ErrInvalidBuyer
	}
	if len(o.Lines) == 0 {
		return ErrEmptyOrder
	}
	for _, line := range o.Lines {
		if line.ProductID <= 0 {
			return ErrInvalidProductID
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// Total sums the frozen line subtotals.
func (o *Order) Total() int64 {
	var total int64
	for _, line := range o.Lines {
		total += line.Subtotal()
	}
	return total
}

// ProductIDs lists the ordered products in request order, for cart reconciliation.
func (o *Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Lines))
	for _, line := range o.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}
