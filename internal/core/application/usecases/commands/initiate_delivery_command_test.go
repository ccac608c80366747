package commands_test

import (
	"testing"

	"relaypost/internal/core/application/usecases/commands"
	"relaypost/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitiateDeliveryCommand(t *testing.T) {
	deliveryID := kernel.NewUUID()
	shipperID := kernel.NewUUID()
	originAP := kernel.NewUUID()
	destAP := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		productID := kernel.NewUUID()

		cmd, err := commands.NewInitiateDeliveryCommand(deliveryID, shipperID, &productID, originAP, destAP)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.DeliveryID().IsEqual(deliveryID))
		assert.True(t, cmd.ShipperID().IsEqual(shipperID))
		require.NotNil(t, cmd.ProductID())
		assert.True(t, cmd.ProductID().IsEqual(productID))
		assert.True(t, cmd.OriginAPID().IsEqual(originAP))
		assert.True(t, cmd.DestinationAPID().IsEqual(destAP))
	})

	t.Run("should allow missing product reference", func(t *testing.T) {
		cmd, err := commands.NewInitiateDeliveryCommand(deliveryID, shipperID, nil, originAP, destAP)

		require.NoError(t, err)
		assert.Nil(t, cmd.ProductID())
	})

	t.Run("should reject identical origin and destination", func(t *testing.T) {
		_, err := commands.NewInitiateDeliveryCommand(deliveryID, shipperID, nil, originAP, originAP)

		require.ErrorIs(t, err, commands.ErrSameAccessPoint)
	})

	t.Run("should reject unconstructed ids", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewInitiateDeliveryCommand(invalid, shipperID, nil, originAP, destAP)
		require.Error(t, err)

		_, err = commands.NewInitiateDeliveryCommand(deliveryID, invalid, nil, originAP, destAP)
		require.Error(t, err)

		_, err = commands.NewInitiateDeliveryCommand(deliveryID, shipperID, &invalid, originAP, destAP)
		require.Error(t, err)
	})

	t.Run("zero value command should fail validation", func(t *testing.T) {
		var cmd commands.InitiateDeliveryCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrInitiateDeliveryCommandIsNotConstructed)
	})
}
