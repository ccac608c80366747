package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"relaypost/internal/core/domain/model/account"
	"relaypost/internal/core/ports"
)

// ErrCapacityExceeded is returned when a courier already carries the maximum
// number of concurrent deliveries.
var ErrCapacityExceeded = errors.New("courier capacity exceeded")

// DefaultCourierCapacity is the number of deliveries a courier may carry at
// the same time unless configured otherwise.
const DefaultCourierCapacity = 5

// ClaimPackageCommandHandler handles the business logic for claiming a
// waiting package.
//
// The claim itself is persisted as an atomic conditional update, so two
// couriers racing for the same package cannot both win: the loser gets a
// status conflict even though both read the delivery as awaiting pickup.
type ClaimPackageCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.DeliveryNotifier
	capacity   int
}

// NewClaimPackageCommandHandler creates a handler for package claims.
// A non-positive capacity falls back to DefaultCourierCapacity.
func NewClaimPackageCommandHandler(
	uowFactory UoWFactory,
	notifier ports.DeliveryNotifier,
	capacity int,
) ClaimPackageCommandHandler {
	if capacity <= 0 {
		capacity = DefaultCourierCapacity
	}
	return ClaimPackageCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		capacity:   capacity,
	}
}

// Handle processes the claim command.
//
// Business rules enforced, all leaving state unchanged on failure:
//   - The courier's role must allow carrying packages
//   - The delivery must be awaiting pickup with no assigned courier
//   - The courier must be under the concurrent capacity limit
func (h *ClaimPackageCommandHandler) Handle(ctx context.Context, cmd ClaimPackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The courier row lock makes the capacity count below race-free: two
	// simultaneous claims by the same courier serialize here, so the
	// second one counts the first claim's delivery.
	courier, err := uow.AccountRepository().GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if !courier.Role().CanCarryPackages() {
		return account.ErrRoleNotAllowed
	}

	deliveryRepo := uow.DeliveryRepository()

	active, err := deliveryRepo.CountActiveByCourier(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if active >= h.capacity {
		return fmt.Errorf("%w: %d deliveries in transit, limit is %d", ErrCapacityExceeded, active, h.capacity)
	}

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.Claim(cmd.CourierID(), time.Now().UTC()); err != nil {
		return err
	}

	// Conditional update: fails with a status conflict if another courier
	// claimed the delivery between our read and this write.
	if err = deliveryRepo.UpdateClaim(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.CourierPackageTaken(ctx, cmd.CourierID(), aggregate.ID())
	if aggregate.ProductID() != nil {
		h.notifier.ProductStatusChanged(ctx, *aggregate.ProductID(), aggregate.Status().String())
	}

	return nil
}
