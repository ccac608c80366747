package commands_test

import (
	"testing"

	"relaypost/internal/core/application/usecases/commands"
	"relaypost/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipientPickupCommand(t *testing.T) {
	deliveryID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewRecipientPickupCommand(deliveryID, "SECRET42")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.DeliveryID().IsEqual(deliveryID))
		assert.Equal(t, "SECRET42", cmd.Code())
	})

	t.Run("should reject empty code", func(t *testing.T) {
		_, err := commands.NewRecipientPickupCommand(deliveryID, "")

		require.ErrorIs(t, err, commands.ErrCodeIsRequired)
	})

	t.Run("should reject unconstructed delivery id", func(t *testing.T) {
		var invalid kernel.UUID

		_, err := commands.NewRecipientPickupCommand(invalid, "SECRET42")

		require.Error(t, err)
	})

	t.Run("zero value command should fail validation", func(t *testing.T) {
		var cmd commands.RecipientPickupCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrRecipientPickupCommandIsNotConstructed)
	})
}
