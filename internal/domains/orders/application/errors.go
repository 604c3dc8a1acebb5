package application

import (
	"errors"
	"fmt"

	"github.com/myjhye/shop/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrInvalidBuyer) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
