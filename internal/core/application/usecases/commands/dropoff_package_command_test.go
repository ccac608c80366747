package commands_test

import (
	"testing"

	"relaypost/internal/core/application/usecases/commands"
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDropoffPackageCommand(t *testing.T) {
	courierID := kernel.NewUUID()
	deliveryID := kernel.NewUUID()
	accessPointID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewDropoffPackageCommand(courierID, deliveryID, accessPointID, services.ModeHops)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.CourierID().IsEqual(courierID))
		assert.True(t, cmd.DeliveryID().IsEqual(deliveryID))
		assert.True(t, cmd.AccessPointID().IsEqual(accessPointID))
		assert.Equal(t, services.ModeHops, cmd.Mode())
	})

	t.Run("should accept nodes mode", func(t *testing.T) {
		cmd, err := commands.NewDropoffPackageCommand(courierID, deliveryID, accessPointID, services.ModeNodes)

		require.NoError(t, err)
		assert.Equal(t, services.ModeNodes, cmd.Mode())
	})

	t.Run("should reject invalid mode", func(t *testing.T) {
		_, err := commands.NewDropoffPackageCommand(courierID, deliveryID, accessPointID, services.ModeUnknown)

		require.Error(t, err)
	})

	t.Run("should reject unconstructed ids", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewDropoffPackageCommand(invalid, deliveryID, accessPointID, services.ModeHops)
		require.Error(t, err)

		_, err = commands.NewDropoffPackageCommand(courierID, deliveryID, invalid, services.ModeHops)
		require.Error(t, err)
	})

	t.Run("zero value command should fail validation", func(t *testing.T) {
		var cmd commands.DropoffPackageCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrDropoffPackageCommandIsNotConstructed)
	})
}
