package commands

import (
	"context"
	"time"

	"relaypost/internal/core/domain/services"
	"relaypost/internal/core/ports"
)

// RecipientPickupCommandHandler handles the final hand-off: verifying the
// recipient's code, completing the delivery, and releasing unused escrow back
// to the shipper.
type RecipientPickupCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.DeliveryNotifier
	ledger     services.EscrowLedger
}

// NewRecipientPickupCommandHandler creates a handler for recipient pickups.
func NewRecipientPickupCommandHandler(
	uowFactory UoWFactory,
	notifier ports.DeliveryNotifier,
) RecipientPickupCommandHandler {
	return RecipientPickupCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		ledger:     services.NewEscrowLedger(),
	}
}

// Handle processes the pickup command.
//
// A wrong code fails without any state change or balance transfer. On
// success the refund credit and the delivery completion commit together, so
// the conservation law holds: the reservation equals the courier payouts
// plus this refund.
func (h *RecipientPickupCommandHandler) Handle(ctx context.Context, cmd RecipientPickupCommand) error {
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

	// Row lock: a repeated pickup waits here and then finds the delivery
	// already completed, so the refund is credited exactly once.
	aggregate, err := uow.DeliveryRepository().GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	refund, err := aggregate.ConfirmReceipt(cmd.Code(), time.Now().UTC())
	if err != nil {
		return err
	}

	shipper, err := uow.AccountRepository().GetForUpdate(ctx, aggregate.ShipperID())
	if err != nil {
		return err
	}
	if err = h.ledger.Release(shipper, refund); err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.AccountRepository().Update(ctx, shipper); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if aggregate.ProductID() != nil {
		h.notifier.ProductStatusChanged(ctx, *aggregate.ProductID(), aggregate.Status().String())
	}

	return nil
}
