// Package redis implements the delivery notifier on top of Redis.
//
// The notifier maintains two derived views: the status string shown for a
// product, and a set of delivery ids per courier for their active load. Both
// are projections of state already committed to Postgres, so write failures
// are logged and swallowed rather than bubbled back into the lifecycle.
package redis

import (
	"context"
	"log/slog"
	"time"

	"relaypost/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	productStatusKeyPrefix   = "product:status:"
	courierActiveSetPrefix   = "courier:active:"
	notifierOperationTimeout = 2 * time.Second
)

// Notifier writes delivery lifecycle side effects to Redis.
type Notifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewNotifier creates a notifier backed by the given Redis client.
func NewNotifier(client *redis.Client, logger *slog.Logger) *Notifier {
	return &Notifier{
		client: client,
		logger: logger.With("component", "redis_notifier"),
	}
}

// ProductStatusChanged records the delivery status now shown for a product.
func (n *Notifier) ProductStatusChanged(ctx context.Context, productID kernel.UUID, status string) {
	ctx, cancel := context.WithTimeout(ctx, notifierOperationTimeout)
	defer cancel()

	key := productStatusKeyPrefix + productID.String()
	if err := n.client.Set(ctx, key, status, 0).Err(); err != nil {
		n.logger.ErrorContext(ctx, "Failed to update product status view",
			"product_id", productID.String(), "status", status, "error", err)
	}
}

// CourierPackageTaken adds a delivery to a courier's active set.
func (n *Notifier) CourierPackageTaken(ctx context.Context, courierID kernel.UUID, deliveryID kernel.UUID) {
	ctx, cancel := context.WithTimeout(ctx, notifierOperationTimeout)
	defer cancel()

	key := courierActiveSetPrefix + courierID.String()
	if err := n.client.SAdd(ctx, key, deliveryID.String()).Err(); err != nil {
		n.logger.ErrorContext(ctx, "Failed to add delivery to courier active set",
			"courier_id", courierID.String(), "delivery_id", deliveryID.String(), "error", err)
	}
}

// CourierPackageReleased removes a delivery from a courier's active set.
func (n *Notifier) CourierPackageReleased(ctx context.Context, courierID kernel.UUID, deliveryID kernel.UUID) {
	ctx, cancel := context.WithTimeout(ctx, notifierOperationTimeout)
	defer cancel()

	key := courierActiveSetPrefix + courierID.String()
	if err := n.client.SRem(ctx, key, deliveryID.String()).Err(); err != nil {
		n.logger.ErrorContext(ctx, "Failed to remove delivery from courier active set",
			"courier_id", courierID.String(), "delivery_id", deliveryID.String(), "error", err)
	}
}
