package commands

import (
	"context"
	"time"

	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/station"
	"relaypost/internal/core/domain/services"
	"relaypost/internal/core/ports"
)

// DropoffPackageCommandHandler handles the business logic for a courier
// dropping a package off: closing the leg, measuring progress, paying the
// courier, and advancing the lifecycle.
//
// The leg closure, courier credit, and delivery update run in one
// transaction, so a mid-sequence failure cannot pay a courier without
// recording the progress that payout was for.
type DropoffPackageCommandHandler struct {
	uowFactory   UoWFactory
	stations     ports.StationRepository
	accessPoints ports.AccessPointLookup
	notifier     ports.DeliveryNotifier
	tracker      services.ProgressTracker
	ledger       services.EscrowLedger
}

// NewDropoffPackageCommandHandler creates a handler for package drop-offs.
func NewDropoffPackageCommandHandler(
	uowFactory UoWFactory,
	stations ports.StationRepository,
	accessPoints ports.AccessPointLookup,
	notifier ports.DeliveryNotifier,
) DropoffPackageCommandHandler {
	return DropoffPackageCommandHandler{
		uowFactory:   uowFactory,
		stations:     stations,
		accessPoints: accessPoints,
		notifier:     notifier,
		tracker:      services.NewProgressTracker(),
		ledger:       services.NewEscrowLedger(),
	}
}

// Handle processes the drop-off command.
//
// Business rules enforced, all leaving state unchanged on failure:
//   - The acting courier must be the delivery's assigned courier
//   - An open leg must exist
//   - The drop-off access point must lie on the planned path
//   - The payout must fit in the remaining escrow
//
// The payout is the progress delta since the previous payout applied to the
// full delivery cost, so the deltas of a complete journey sum to the
// reservation. Landing on the destination access point makes the delivery
// ready for the recipient; any earlier access point returns it to awaiting
// pickup for the next courier.
func (h *DropoffPackageCommandHandler) Handle(ctx context.Context, cmd DropoffPackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	dropRef, err := h.accessPoints.ByID(ctx, cmd.AccessPointID())
	if err != nil {
		return err
	}

	network, err := h.loadNetwork(ctx)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Row lock: a second drop-off of the same delivery waits here and then
	// sees the closed leg instead of completing it again.
	aggregate, err := uow.DeliveryRepository().GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if aggregate.CourierID() == nil || !aggregate.CourierID().IsEqual(cmd.CourierID()) {
		return delivery.ErrNotAssignedCourier
	}
	leg := aggregate.OpenLeg()
	if leg == nil {
		return delivery.ErrNoOpenLeg
	}

	fromRef, err := h.accessPoints.ByID(ctx, leg.From())
	if err != nil {
		return err
	}
	legDistance, err := network.HopDistance(fromRef.StationID, dropRef.StationID)
	if err != nil {
		return err
	}

	report, err := h.tracker.Progress(
		aggregate.PlannedPath(),
		aggregate.OriginAP(),
		aggregate.DestinationAP(),
		cmd.AccessPointID(),
		cmd.Mode(),
	)
	if err != nil {
		return err
	}

	payout, err := h.tracker.PayoutDelta(aggregate.TotalCost(), aggregate.Progress(), report.Fraction)
	if err != nil {
		return err
	}

	courier, err := uow.AccountRepository().GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if err = h.ledger.PayCourier(courier, payout); err != nil {
		return err
	}

	_, err = aggregate.CompleteLeg(
		cmd.CourierID(),
		cmd.AccessPointID(),
		time.Now().UTC(),
		legDistance,
		payout,
		report.Fraction,
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.AccountRepository().Update(ctx, courier); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.CourierPackageReleased(ctx, cmd.CourierID(), aggregate.ID())
	if aggregate.ProductID() != nil {
		h.notifier.ProductStatusChanged(ctx, *aggregate.ProductID(), aggregate.Status().String())
	}

	return nil
}

func (h *DropoffPackageCommandHandler) loadNetwork(ctx context.Context) (*station.Network, error) {
	stations, err := h.stations.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return station.NewNetwork(stations)
}
