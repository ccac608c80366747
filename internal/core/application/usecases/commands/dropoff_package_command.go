package commands

import (
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/domain/services"
	"relaypost/internal/pkg/guard"
)

var ErrDropoffPackageCommandIsNotConstructed = errors.New(
	"DropoffPackageCommand must be created via NewDropoffPackageCommand constructor",
)

// DropoffPackageCommand represents a courier's request to drop a carried
// package off at an access point, closing the current leg.
//
// The progress mode decides how the courier's payout share is counted over
// the planned path, by hops or by visited nodes.
type DropoffPackageCommand struct { //nolint:recvcheck //using for validation
	courierID     kernel.UUID
	deliveryID    kernel.UUID
	accessPointID kernel.UUID
	mode          services.Mode

	guard guard.ConstructorGuard
}

// NewDropoffPackageCommand creates a command for a courier to drop a package
// off at the given access point.
func NewDropoffPackageCommand(
	courierID kernel.UUID,
	deliveryID kernel.UUID,
	accessPointID kernel.UUID,
	mode services.Mode,
) (DropoffPackageCommand, error) {
	cmd := DropoffPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setDeliveryID(deliveryID),
		cmd.setAccessPointID(accessPointID),
		cmd.setMode(mode),
	); err != nil {
		return DropoffPackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDropoffPackageCommandIsNotConstructed if validation fails.
func (c DropoffPackageCommand) Validate() error {
	return c.guard.Validate(ErrDropoffPackageCommandIsNotConstructed)
}

// CourierID returns the account dropping the package off.
func (c DropoffPackageCommand) CourierID() kernel.UUID {
	return c.courierID
}

// DeliveryID returns the delivery being dropped off.
func (c DropoffPackageCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// AccessPointID returns where the package is being dropped off.
func (c DropoffPackageCommand) AccessPointID() kernel.UUID {
	return c.accessPointID
}

// Mode returns how progress is counted for the payout.
func (c DropoffPackageCommand) Mode() services.Mode {
	return c.mode
}

func (c *DropoffPackageCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *DropoffPackageCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *DropoffPackageCommand) setAccessPointID(accessPointID kernel.UUID) error {
	if err := accessPointID.Validate(); err != nil {
		return err
	}

	c.accessPointID = accessPointID
	return nil
}

func (c *DropoffPackageCommand) setMode(mode services.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	c.mode = mode
	return nil
}
