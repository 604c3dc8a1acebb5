package application

import (
	"errors"
	"fmt"

	"github.com/myjhye/shop/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
	// ErrNotOwner signals the caller does not own the product.
	ErrNotOwner = errors.New("caller is not the product seller")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidSeller) ||
		errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidStock) ||
		errors.Is(err, domain.ErrInvalidCategory) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
