package ports

import "context"

// CartReconciler removes purchased products from the buyer's cart after an
// order commits. Cart state is advisory: absent entries are not an error and
// reconciliation failures never fail a committed placement.
type CartReconciler interface {
	RemovePurchased(ctx context.Context, buyerID int64, productIDs []int64) error
}

// NoopCartReconciler is a safe default when no cart context is wired.
var NoopCartReconciler CartReconciler = noopCartReconciler{}

type noopCartReconciler struct{}

func (noopCartReconciler) RemovePurchased(_ context.Context, _ int64, _ []int64) error { return nil }
