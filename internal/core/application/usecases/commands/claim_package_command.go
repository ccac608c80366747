package commands

import (
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/guard"
)

var ErrClaimPackageCommandIsNotConstructed = errors.New(
	"ClaimPackageCommand must be created via NewClaimPackageCommand constructor",
)

// ClaimPackageCommand represents a courier's request to pick up a waiting
// package at its current access point and carry the next leg.
type ClaimPackageCommand struct { //nolint:recvcheck //using for validation
	courierID  kernel.UUID
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimPackageCommand creates a command for a courier to claim a delivery.
func NewClaimPackageCommand(courierID kernel.UUID, deliveryID kernel.UUID) (ClaimPackageCommand, error) {
	cmd := ClaimPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setDeliveryID(deliveryID),
	); err != nil {
		return ClaimPackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimPackageCommandIsNotConstructed if validation fails.
func (c ClaimPackageCommand) Validate() error {
	return c.guard.Validate(ErrClaimPackageCommandIsNotConstructed)
}

// CourierID returns the account claiming the package.
func (c ClaimPackageCommand) CourierID() kernel.UUID {
	return c.courierID
}

// DeliveryID returns the delivery being claimed.
func (c ClaimPackageCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *ClaimPackageCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *ClaimPackageCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}
