package application

import (
	"errors"
	"fmt"

	"github.com/myjhye/shop/internal/domains/cart/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrProductNotFound signals the referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidUser) ||
		errors.Is(err, domain.ErrInvalidProduct) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
