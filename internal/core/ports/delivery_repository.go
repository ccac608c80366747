package ports

import (
	"context"

	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage, including its legs.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier,
	// restored with its full leg history.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate retrieves a delivery aggregate with a row lock held
	// until the transaction ends. Use it before mutating the lifecycle
	// (drop-off, pickup) so concurrent writers of the same delivery
	// serialize instead of working from stale snapshots.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// UpdateClaim persists a claim as an atomic conditional update: the
	// delivery row changes only if it is still awaiting pickup with no
	// assigned courier. Returns delivery.ErrStatusConflict when another
	// courier won the race.
	UpdateClaim(ctx context.Context, aggregate *delivery.Delivery) error

	// CountActiveByCourier counts the deliveries a courier currently
	// carries, used to enforce the concurrent capacity limit.
	CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int, error)
}
