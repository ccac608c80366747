package queries

import (
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/guard"
)

var (
	ErrGetShipperDeliveriesQueryIsNotConstructed = errors.New(
		"GetShipperDeliveriesQuery must be created via NewGetShipperDeliveriesQuery constructor",
	)
)

// GetShipperDeliveriesQuery retrieves every delivery a shipper has initiated,
// most recent first.
//
// Example:
//
//	query, err := queries.NewGetShipperDeliveriesQuery(shipperID)
//	if err != nil {
//	    return err
//	}
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list shipper deliveries: %w", err)
//	}
//
//	fmt.Printf("Shipper has %d deliveries\n", len(deliveries))
type GetShipperDeliveriesQuery struct {
	shipperID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipperDeliveriesQuery creates a query for a shipper's deliveries.
func NewGetShipperDeliveriesQuery(shipperID kernel.UUID) (GetShipperDeliveriesQuery, error) {
	q := GetShipperDeliveriesQuery{guard: guard.NewConstructorGuard()}

	if err := q.setShipperID(shipperID); err != nil {
		return GetShipperDeliveriesQuery{}, err
	}

	return q, nil
}

// ShipperID returns the identifier of the shipper whose deliveries to list.
func (q GetShipperDeliveriesQuery) ShipperID() kernel.UUID {
	return q.shipperID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipperDeliveriesQueryIsNotConstructed if validation fails.
func (q GetShipperDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetShipperDeliveriesQueryIsNotConstructed)
}

func (q *GetShipperDeliveriesQuery) setShipperID(shipperID kernel.UUID) error {
	if err := shipperID.Validate(); err != nil {
		return err
	}

	q.shipperID = shipperID
	return nil
}
