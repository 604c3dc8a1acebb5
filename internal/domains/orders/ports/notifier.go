package ports

import (
	"context"

	"github.com/myjhye/shop/internal/domains/orders/domain"
)

// PlacementNotifier fans a committed order out to interested sellers. It runs
// strictly after commit and is best-effort; errors are logged, never surfaced.
type PlacementNotifier interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
}

// NoopPlacementNotifier is a safe default when notifications are not wired.
var NoopPlacementNotifier PlacementNotifier = noopPlacementNotifier{}

type noopPlacementNotifier struct{}

func (noopPlacementNotifier) OrderPlaced(_ context.Context, _ *domain.Order) error { return nil }
