package commands

import (
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/guard"
)

var (
	ErrInitiateDeliveryCommandIsNotConstructed = errors.New(
		"InitiateDeliveryCommand must be created via NewInitiateDeliveryCommand constructor",
	)
	ErrSameAccessPoint = errors.New("origin and destination access points must differ")
)

// InitiateDeliveryCommand represents a shipper's request to start a relay
// delivery between two access points, optionally tied to a product.
//
// Example:
//
//	deliveryID := kernel.NewUUID()
//	cmd, err := NewInitiateDeliveryCommand(deliveryID, shipperID, nil, originAP, destAP)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery request: %w", err)
//	}
//
//	handler := NewInitiateDeliveryCommandHandler(uowFactory, stations, accessPoints, products, codes, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to initiate delivery: %w", err)
//	}
type InitiateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID      kernel.UUID
	shipperID       kernel.UUID
	productID       *kernel.UUID
	originAPID      kernel.UUID
	destinationAPID kernel.UUID

	guard guard.ConstructorGuard
}

// NewInitiateDeliveryCommand creates a command to start a new delivery.
// Validates that all ids are constructed and that the origin and destination
// access points differ. The product reference is optional.
func NewInitiateDeliveryCommand(
	deliveryID kernel.UUID,
	shipperID kernel.UUID,
	productID *kernel.UUID,
	originAPID kernel.UUID,
	destinationAPID kernel.UUID,
) (InitiateDeliveryCommand, error) {
	cmd := InitiateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setShipperID(shipperID),
		cmd.setProductID(productID),
		cmd.setEndpoints(originAPID, destinationAPID),
	); err != nil {
		return InitiateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrInitiateDeliveryCommandIsNotConstructed if validation fails.
func (c InitiateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrInitiateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier the new delivery will be created under.
func (c InitiateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ShipperID returns the account funding the delivery.
func (c InitiateDeliveryCommand) ShipperID() kernel.UUID {
	return c.shipperID
}

// ProductID returns the optional product reference, nil if none was supplied.
func (c InitiateDeliveryCommand) ProductID() *kernel.UUID {
	return c.productID
}

// OriginAPID returns the access point where the package starts.
func (c InitiateDeliveryCommand) OriginAPID() kernel.UUID {
	return c.originAPID
}

// DestinationAPID returns the access point where the package must end up.
func (c InitiateDeliveryCommand) DestinationAPID() kernel.UUID {
	return c.destinationAPID
}

func (c *InitiateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *InitiateDeliveryCommand) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}

	c.shipperID = shipperID
	return nil
}

func (c *InitiateDeliveryCommand) setProductID(productID *kernel.UUID) error {
	if productID != nil {
		if err := productID.Validate(); err != nil {
			return err
		}
	}

	c.productID = productID
	return nil
}

func (c *InitiateDeliveryCommand) setEndpoints(originAPID, destinationAPID kernel.UUID) error {
	if err := errors.Join(originAPID.Validate(), destinationAPID.Validate()); err != nil {
		return err
	}
	if originAPID.IsEqual(destinationAPID) {
		return ErrSameAccessPoint
	}

	c.originAPID = originAPID
	c.destinationAPID = destinationAPID
	return nil
}
