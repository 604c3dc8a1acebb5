package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidatePlacement(t *testing.T) {
	valid := []PlacementLine{{ProductID: 1, Quantity: 2}}

	require.NoError(t, ValidatePlacement(1, valid))
	require.ErrorIs(t, ValidatePlacement(0, valid), ErrInvalidBuyer)
	require.ErrorIs(t, ValidatePlacement(1, nil), ErrEmptyOrder)
	require.ErrorIs(t, ValidatePlacement(1, []PlacementLine{}), ErrEmptyOrder)
	require.ErrorIs(t, ValidatePlacement(1, []PlacementLine{{ProductID: 0, Quantity: 1}}), ErrInvalidProductID)
	require.ErrorIs(t, ValidatePlacement(1, []PlacementLine{{ProductID: 1, Quantity: 0}}), ErrInvalidQuantity)
	require.ErrorIs(t, ValidatePlacement(1, []PlacementLine{{ProductID: 1, Quantity: -3}}), ErrInvalidQuantity)
}

func TestOrderTotalSumsFrozenPrices(t *testing.T) {
	order := &Order{
		ID:      1,
		BuyerID: 7,
		Lines: []OrderLine{
			{ProductID: 1, Quantity: 2, UnitPrice: 1500},
			{ProductID: 2, Quantity: 1, UnitPrice: 300},
		},
		CreatedAt: time.Now(),
	}

	require.Equal(t, int64(3000), order.Lines[0].Subtotal())
	require.Equal(t, int64(3300), order.Total())
}

func TestOrderProductIDs(t *testing.T) {
	order := &Order{
		BuyerID: 7,
		Lines: []OrderLine{
			{ProductID: 5, Quantity: 1, UnitPrice: 100},
			{ProductID: 9, Quantity: 2, UnitPrice: 100},
			{ProductID: 5, Quantity: 3, UnitPrice: 100},
		},
	}

	require.Equal(t, []int64{5, 9, 5}, order.ProductIDs())
}
