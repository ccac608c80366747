package commands

import (
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/guard"
)

var (
	ErrRecipientPickupCommandIsNotConstructed = errors.New(
		"RecipientPickupCommand must be created via NewRecipientPickupCommand constructor",
	)
	ErrCodeIsRequired = errors.New("verification code is required")
)

// RecipientPickupCommand represents a recipient presenting the verification
// code to collect a package waiting at the destination access point.
type RecipientPickupCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	code       string

	guard guard.ConstructorGuard
}

// NewRecipientPickupCommand creates a command to complete a delivery with the
// recipient's verification code.
func NewRecipientPickupCommand(deliveryID kernel.UUID, code string) (RecipientPickupCommand, error) {
	cmd := RecipientPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCode(code),
	); err != nil {
		return RecipientPickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecipientPickupCommandIsNotConstructed if validation fails.
func (c RecipientPickupCommand) Validate() error {
	return c.guard.Validate(ErrRecipientPickupCommandIsNotConstructed)
}

// DeliveryID returns the delivery being collected.
func (c RecipientPickupCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Code returns the presented verification code.
func (c RecipientPickupCommand) Code() string {
	return c.code
}

func (c *RecipientPickupCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *RecipientPickupCommand) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}

	c.code = code
	return nil
}
