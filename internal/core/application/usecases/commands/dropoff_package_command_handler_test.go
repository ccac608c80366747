package commands_test

import (
	"testing"
	"time"

	"relaypost/internal/core/application/usecases/commands"
	"relaypost/internal/core/domain/model/account"
	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/domain/services"
	"relaypost/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDropoffPackageCommandHandler_Handle_IntermediateDropoff(t *testing.T) {
	ctx := t.Context()
	fx := newRelayFixture(t)
	courier := newTestAccount(t, account.RoleCourier, "0.00")
	aggregate := fx.newDelivery(t, newTestAccount(t, account.RoleShipper, "10.00").ID())
	require.NoError(t, aggregate.Claim(courier.ID(), time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)))

	cmd, err := commands.NewDropoffPackageCommand(courier.ID(), aggregate.ID(), fx.aps[1].ID, services.ModeHops)
	require.NoError(t, err)

	stations := new(MockStationRepository)
	accessPoints := new(MockAccessPointLookup)
	notifier := new(MockDeliveryNotifier)
	deliveryRepo := new(MockDeliveryRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		accessPoints.On("ByID", ctx, fx.aps[1].ID).Return(fx.aps[1], nil).Once(),
		stations.On("GetAll", ctx).Return(fx.stations, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		accessPoints.On("ByID", ctx, fx.aps[0].ID).Return(fx.aps[0], nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("GetForUpdate", ctx, courier.ID()).Return(courier, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Update", ctx, courier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("CourierPackageReleased", ctx, courier.ID(), aggregate.ID()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDropoffPackageCommandHandler(factory, stations, accessPoints, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	// Half the path in hops mode pays half the pool: 3.30 x 0.5.
	assert.Equal(t, "1.65", courier.Balance().String())
	assert.Equal(t, delivery.AwaitingPickup, aggregate.Status())
	assert.Nil(t, aggregate.CourierID())
	assert.True(t, aggregate.CurrentAP().IsEqual(fx.aps[1].ID))
	assert.Equal(t, "1.65", aggregate.PaidAmount().String())
	assert.InDelta(t, 0.5, aggregate.Progress(), 1e-9)
	assert.Equal(t, 1, aggregate.ActualDistance())

	deliveryRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestDropoffPackageCommandHandler_Handle_FinalDropoff(t *testing.T) {
	ctx := t.Context()
	fx := newRelayFixture(t)
	courier := newTestAccount(t, account.RoleCourier, "0.00")
	aggregate := fx.newDelivery(t, newTestAccount(t, account.RoleShipper, "10.00").ID())
	require.NoError(t, aggregate.Claim(courier.ID(), time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)))

	cmd, err := commands.NewDropoffPackageCommand(courier.ID(), aggregate.ID(), fx.aps[2].ID, services.ModeHops)
	require.NoError(t, err)

	stations := new(MockStationRepository)
	accessPoints := new(MockAccessPointLookup)
	notifier := new(MockDeliveryNotifier)
	deliveryRepo := new(MockDeliveryRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		accessPoints.On("ByID", ctx, fx.aps[2].ID).Return(fx.aps[2], nil).Once(),
		stations.On("GetAll", ctx).Return(fx.stations, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		accessPoints.On("ByID", ctx, fx.aps[0].ID).Return(fx.aps[0], nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("GetForUpdate", ctx, courier.ID()).Return(courier, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Update", ctx, courier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("CourierPackageReleased", ctx, courier.ID(), aggregate.ID()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDropoffPackageCommandHandler(factory, stations, accessPoints, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.ReadyForRecipient, aggregate.Status())
	assert.Equal(t, "3.30", courier.Balance().String())
	assert.True(t, aggregate.PaidAmount().IsEqual(aggregate.ReservedAmount()))
	assert.InDelta(t, 1.0, aggregate.Progress(), 1e-9)
	assert.Equal(t, 2, aggregate.ActualDistance())
}

func TestDropoffPackageCommandHandler_Handle_RepeatedDropoffPaysOnce(t *testing.T) {
	ctx := t.Context()
	fx := newRelayFixture(t)
	courier := newTestAccount(t, account.RoleCourier, "1.65")
	aggregate := fx.newDelivery(t, newTestAccount(t, account.RoleShipper, "10.00").ID())
	pickupAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	require.NoError(t, aggregate.Claim(courier.ID(), pickupAt))

	// First drop-off at the middle of the path has already committed.
	paid, err := kernel.PointsFromString("1.65")
	require.NoError(t, err)
	_, err = aggregate.CompleteLeg(courier.ID(), fx.aps[1].ID, pickupAt.Add(time.Hour), 1, paid, 0.5)
	require.NoError(t, err)

	// The same courier retries the drop-off. The locked read serves the
	// committed state, not the pre-drop-off snapshot, so the retry finds
	// itself no longer assigned and the leg cannot pay out twice.
	cmd, err := commands.NewDropoffPackageCommand(courier.ID(), aggregate.ID(), fx.aps[1].ID, services.ModeHops)
	require.NoError(t, err)

	stations := new(MockStationRepository)
	accessPoints := new(MockAccessPointLookup)
	deliveryRepo := new(MockDeliveryRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		accessPoints.On("ByID", ctx, fx.aps[1].ID).Return(fx.aps[1], nil).Once(),
		stations.On("GetAll", ctx).Return(fx.stations, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDropoffPackageCommandHandler(factory, stations, accessPoints, new(MockDeliveryNotifier))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrNotAssignedCourier)
	assert.Equal(t, "1.65", courier.Balance().String())
	assert.Equal(t, "1.65", aggregate.PaidAmount().String())
	accountRepo.AssertNotCalled(t, "GetForUpdate")
	deliveryRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
}

func TestDropoffPackageCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	fx := newRelayFixture(t)
	assigned := newTestAccount(t, account.RoleCourier, "0.00")
	intruder := newTestAccount(t, account.RoleCourier, "0.00")
	aggregate := fx.newDelivery(t, newTestAccount(t, account.RoleShipper, "10.00").ID())
	require.NoError(t, aggregate.Claim(assigned.ID(), time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)))

	cmd, err := commands.NewDropoffPackageCommand(intruder.ID(), aggregate.ID(), fx.aps[1].ID, services.ModeHops)
	require.NoError(t, err)

	stations := new(MockStationRepository)
	accessPoints := new(MockAccessPointLookup)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		accessPoints.On("ByID", ctx, fx.aps[1].ID).Return(fx.aps[1], nil).Once(),
		stations.On("GetAll", ctx).Return(fx.stations, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDropoffPackageCommandHandler(factory, stations, accessPoints, new(MockDeliveryNotifier))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrNotAssignedCourier)
	assert.Equal(t, delivery.InTransit, aggregate.Status())
	assert.True(t, aggregate.PaidAmount().IsZero())
	deliveryRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
}

func TestDropoffPackageCommandHandler_Handle_OffThePlannedPath(t *testing.T) {
	ctx := t.Context()
	fx := newRelayFixture(t)
	courier := newTestAccount(t, account.RoleCourier, "0.00")
	aggregate := fx.newDelivery(t, newTestAccount(t, account.RoleShipper, "10.00").ID())
	require.NoError(t, aggregate.Claim(courier.ID(), time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)))

	// A real access point on a station of the network, but not part of
	// this delivery's planned path.
	coords, err := kernel.NewCoordinates(41.5, 30.5)
	require.NoError(t, err)
	stray := ports.AccessPointRef{
		ID:          kernel.NewUUID(),
		Name:        "Stray AP",
		StationID:   fx.stationIDs[1],
		Coordinates: coords,
	}

	cmd, err := commands.NewDropoffPackageCommand(courier.ID(), aggregate.ID(), stray.ID, services.ModeHops)
	require.NoError(t, err)

	stations := new(MockStationRepository)
	accessPoints := new(MockAccessPointLookup)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		accessPoints.On("ByID", ctx, stray.ID).Return(stray, nil).Once(),
		stations.On("GetAll", ctx).Return(fx.stations, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		accessPoints.On("ByID", ctx, fx.aps[0].ID).Return(fx.aps[0], nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDropoffPackageCommandHandler(factory, stations, accessPoints, new(MockDeliveryNotifier))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrPositionNotOnPath)
	assert.Equal(t, delivery.InTransit, aggregate.Status())
	assert.True(t, courier.Balance().IsZero())
}

func TestDropoffPackageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.DropoffPackageCommand

	factory := new(MockUoWFactory)
	handler := commands.NewDropoffPackageCommandHandler(
		factory, new(MockStationRepository), new(MockAccessPointLookup), new(MockDeliveryNotifier),
	)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrDropoffPackageCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
