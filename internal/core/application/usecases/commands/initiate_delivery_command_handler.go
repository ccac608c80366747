package commands

import (
	"context"
	"time"

	"relaypost/internal/core/domain/model/account"
	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/domain/model/station"
	"relaypost/internal/core/domain/services"
	"relaypost/internal/core/ports"
	"relaypost/internal/pkg/errs"
)

// InitiateDeliveryCommandHandler handles the business logic for starting a
// relay delivery: routing, pricing, escrow reservation, and persistence.
//
// The handler resolves both access points to their stations, computes the
// planned path and hop distance over the station graph, prices the delivery,
// debits the shipper, and persists the new aggregate, all inside a single
// transaction so a mid-sequence failure cannot take funds without creating
// the delivery.
type InitiateDeliveryCommandHandler struct {
	uowFactory   UoWFactory
	stations     ports.StationRepository
	accessPoints ports.AccessPointLookup
	products     ports.ProductCatalog
	codes        ports.CodeGenerator
	notifier     ports.DeliveryNotifier
	tariff       services.Tariff
	ledger       services.EscrowLedger
}

// NewInitiateDeliveryCommandHandler creates a handler for delivery initiation.
// Pricing uses the default platform tariff.
func NewInitiateDeliveryCommandHandler(
	uowFactory UoWFactory,
	stations ports.StationRepository,
	accessPoints ports.AccessPointLookup,
	products ports.ProductCatalog,
	codes ports.CodeGenerator,
	notifier ports.DeliveryNotifier,
) InitiateDeliveryCommandHandler {
	return InitiateDeliveryCommandHandler{
		uowFactory:   uowFactory,
		stations:     stations,
		accessPoints: accessPoints,
		products:     products,
		codes:        codes,
		notifier:     notifier,
		tariff:       services.NewDefaultTariff(),
		ledger:       services.NewEscrowLedger(),
	}
}

// Handle processes the delivery initiation command.
//
// Fails closed on every business rule: unknown access points or product,
// a shipper role that cannot initiate deliveries, a disconnected station
// graph, and insufficient balance all leave no trace. The product status
// notification goes out only after the transaction commits.
func (h *InitiateDeliveryCommandHandler) Handle(ctx context.Context, cmd InitiateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.ProductID() != nil {
		exists, err := h.products.Exists(ctx, *cmd.ProductID())
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("product", cmd.ProductID().String())
		}
	}

	origin, err := h.accessPoints.ByID(ctx, cmd.OriginAPID())
	if err != nil {
		return err
	}
	destination, err := h.accessPoints.ByID(ctx, cmd.DestinationAPID())
	if err != nil {
		return err
	}

	network, err := h.loadNetwork(ctx)
	if err != nil {
		return err
	}

	stationPath, err := network.ShortestPath(origin.StationID, destination.StationID)
	if err != nil {
		return err
	}
	hopDistance := len(stationPath) - 1

	plannedPath, err := h.buildPlannedPath(ctx, origin, destination, stationPath)
	if err != nil {
		return err
	}

	totalCost, err := h.tariff.DeliveryCost(hopDistance)
	if err != nil {
		return err
	}

	code, err := h.codes.Generate()
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

	shipper, err := uow.AccountRepository().GetForUpdate(ctx, cmd.ShipperID())
	if err != nil {
		return err
	}
	if !shipper.Role().CanInitiateDelivery() {
		return account.ErrRoleNotAllowed
	}

	if err = h.ledger.Reserve(shipper, totalCost); err != nil {
		return err
	}

	aggregate, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.ProductID(),
		shipper.ID(),
		plannedPath,
		hopDistance,
		totalCost,
		code,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.AccountRepository().Update(ctx, shipper); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.ProductID() != nil {
		h.notifier.ProductStatusChanged(ctx, *cmd.ProductID(), aggregate.Status().String())
	}

	return nil
}

func (h *InitiateDeliveryCommandHandler) loadNetwork(ctx context.Context) (*station.Network, error) {
	stations, err := h.stations.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return station.NewNetwork(stations)
}

// buildPlannedPath lays the access point sequence over the station path:
// the origin access point, the primary access point of each intermediate
// station, and the destination access point.
func (h *InitiateDeliveryCommandHandler) buildPlannedPath(
	ctx context.Context,
	origin ports.AccessPointRef,
	destination ports.AccessPointRef,
	stationPath []kernel.UUID,
) ([]kernel.UUID, error) {
	plannedPath := []kernel.UUID{origin.ID}

	for i := 1; i < len(stationPath)-1; i++ {
		ref, err := h.accessPoints.PrimaryByStation(ctx, stationPath[i])
		if err != nil {
			return nil, err
		}
		// A primary access point can coincide with an endpoint when the
		// endpoint itself is the station's designated hand-off.
		if ref.ID.IsEqual(origin.ID) || ref.ID.IsEqual(destination.ID) {
			continue
		}
		plannedPath = append(plannedPath, ref.ID)
	}

	return append(plannedPath, destination.ID), nil
}
