package ports

import (
	"context"

	"relaypost/internal/core/domain/model/kernel"
)

// DeliveryNotifier pushes lifecycle side effects to derived views: the
// product's displayed status and each courier's active package set.
//
// Notifications are fire-and-forget from the core's perspective. The views
// are derived, not source of truth, so implementations log failures instead
// of failing the delivery transition, and handlers call the notifier only
// after the transaction has committed.
type DeliveryNotifier interface {
	// ProductStatusChanged records the delivery status now shown for a product.
	ProductStatusChanged(ctx context.Context, productID kernel.UUID, status string)

	// CourierPackageTaken adds a delivery to a courier's active set.
	CourierPackageTaken(ctx context.Context, courierID kernel.UUID, deliveryID kernel.UUID)

	// CourierPackageReleased removes a delivery from a courier's active set.
	CourierPackageReleased(ctx context.Context, courierID kernel.UUID, deliveryID kernel.UUID)
}
