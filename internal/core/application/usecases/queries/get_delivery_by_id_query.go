package queries

import (
	"errors"
	"time"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/guard"
)

var (
	ErrGetDeliveryByIDQueryIsNotConstructed = errors.New(
		"GetDeliveryByIDQuery must be created via NewGetDeliveryByIDQuery constructor",
	)
)

// GetDeliveryByIDQuery retrieves the tracking view of a single delivery.
// Returns the delivery with its relay legs ordered by sequence.
//
// Example:
//
//	query, err := queries.NewGetDeliveryByIDQuery(deliveryID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get delivery: %w", err)
//	}
//
//	fmt.Printf("Delivery %s is %s (%.0f%% complete)\n",
//	    view.ID, view.Status, view.Progress*100)
type GetDeliveryByIDQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryByIDQuery creates a query for a single delivery view.
func NewGetDeliveryByIDQuery(deliveryID kernel.UUID) (GetDeliveryByIDQuery, error) {
	q := GetDeliveryByIDQuery{guard: guard.NewConstructorGuard()}

	if err := q.setDeliveryID(deliveryID); err != nil {
		return GetDeliveryByIDQuery{}, err
	}

	return q, nil
}

// DeliveryID returns the identifier of the delivery to fetch.
func (q GetDeliveryByIDQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryByIDQueryIsNotConstructed if validation fails.
func (q GetDeliveryByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryByIDQueryIsNotConstructed)
}

func (q *GetDeliveryByIDQuery) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	q.deliveryID = deliveryID
	return nil
}

// GetDeliveryByIDQueryResponse is the flat tracking view of a delivery.
type GetDeliveryByIDQueryResponse struct {
	ID                kernel.UUID
	ProductID         *kernel.UUID
	ShipperID         kernel.UUID
	CourierID         *kernel.UUID
	OriginAPID        kernel.UUID
	DestinationAPID   kernel.UUID
	CurrentAPID       kernel.UUID
	Status            string
	TotalCost         kernel.Points
	ReservedAmount    kernel.Points
	PaidAmount        kernel.Points
	EstimatedDistance int
	ActualDistance    int
	Progress          float64
	CreatedAt         time.Time
	CompletedAt       *time.Time
	Legs              []DeliveryLegResponse
}

// DeliveryLegResponse is a single relay leg within the tracking view.
type DeliveryLegResponse struct {
	ID        kernel.UUID
	CourierID kernel.UUID
	FromAPID  kernel.UUID
	ToAPID    kernel.UUID
	PickupAt  time.Time
	DropoffAt *time.Time
	Distance  int
	Earnings  kernel.Points
	Status    string
}
