package commands_test

import (
	"testing"
	"time"

	"relaypost/internal/core/application/usecases/commands"
	"relaypost/internal/core/domain/model/account"
	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// readyForRecipient drives a fixture delivery up to the destination with the
// given amount paid out to a courier along the way.
func readyForRecipient(t *testing.T, fx relayFixture, shipperID kernel.UUID, paid string) *delivery.Delivery {
	t.Helper()

	aggregate := fx.newDelivery(t, shipperID)
	courierID := kernel.NewUUID()
	pickupAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	require.NoError(t, aggregate.Claim(courierID, pickupAt))

	earnings, err := kernel.PointsFromString(paid)
	require.NoError(t, err)
	_, err = aggregate.CompleteLeg(courierID, fx.aps[2].ID, pickupAt.Add(time.Hour), 2, earnings, 1.0)
	require.NoError(t, err)

	return aggregate
}

func TestRecipientPickupCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	fx := newRelayFixture(t)
	shipper := newTestAccount(t, account.RoleShipper, "6.70")
	aggregate := readyForRecipient(t, fx, shipper.ID(), "1.65")

	cmd, err := commands.NewRecipientPickupCommand(aggregate.ID(), "PICKUP-CODE")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	accountRepo := new(MockAccountRepository)
	notifier := new(MockDeliveryNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("GetForUpdate", ctx, shipper.ID()).Return(shipper, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("AccountRepository").Return(accountRepo).Once(),
		accountRepo.On("Update", ctx, shipper).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecipientPickupCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.Completed, aggregate.Status())
	require.NotNil(t, aggregate.CompletedAt())

	// Reservation 3.30 minus 1.65 paid comes back to the shipper.
	assert.Equal(t, "8.35", shipper.Balance().String())

	deliveryRepo.AssertExpectations(t)
	accountRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecipientPickupCommandHandler_Handle_InvalidCode(t *testing.T) {
	ctx := t.Context()
	fx := newRelayFixture(t)
	shipper := newTestAccount(t, account.RoleShipper, "6.70")
	aggregate := readyForRecipient(t, fx, shipper.ID(), "1.65")

	cmd, err := commands.NewRecipientPickupCommand(aggregate.ID(), "WRONG-CODE")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecipientPickupCommandHandler(factory, new(MockDeliveryNotifier))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrInvalidCode)
	assert.Equal(t, delivery.ReadyForRecipient, aggregate.Status())
	assert.Equal(t, "6.70", shipper.Balance().String())
	accountRepo.AssertNotCalled(t, "GetForUpdate")
	uow.AssertNotCalled(t, "Commit")
}

func TestRecipientPickupCommandHandler_Handle_RepeatedPickupRefundsOnce(t *testing.T) {
	ctx := t.Context()
	fx := newRelayFixture(t)
	shipper := newTestAccount(t, account.RoleShipper, "8.35")
	aggregate := readyForRecipient(t, fx, shipper.ID(), "1.65")

	// The first pickup has already committed the completion and the refund.
	_, err := aggregate.ConfirmReceipt("PICKUP-CODE", time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// A repeat with the correct code, serialized behind the first by the
	// row lock, reads the completed delivery and cannot release the
	// refund a second time.
	cmd, err := commands.NewRecipientPickupCommand(aggregate.ID(), "PICKUP-CODE")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	accountRepo := new(MockAccountRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecipientPickupCommandHandler(factory, new(MockDeliveryNotifier))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrStatusConflict)
	assert.Equal(t, "8.35", shipper.Balance().String())
	accountRepo.AssertNotCalled(t, "GetForUpdate")
	deliveryRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
}

func TestRecipientPickupCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := t.Context()
	fx := newRelayFixture(t)
	shipper := newTestAccount(t, account.RoleShipper, "6.70")
	aggregate := fx.newDelivery(t, shipper.ID())

	cmd, err := commands.NewRecipientPickupCommand(aggregate.ID(), "PICKUP-CODE")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetForUpdate", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRecipientPickupCommandHandler(factory, new(MockDeliveryNotifier))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrStatusConflict)
	assert.Equal(t, delivery.AwaitingPickup, aggregate.Status())
}

func TestRecipientPickupCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.RecipientPickupCommand

	factory := new(MockUoWFactory)
	handler := commands.NewRecipientPickupCommandHandler(factory, new(MockDeliveryNotifier))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrRecipientPickupCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
