package queries

import (
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/guard"
)

var (
	ErrGetCourierActiveDeliveriesQueryIsNotConstructed = errors.New(
		"GetCourierActiveDeliveriesQuery must be created via NewGetCourierActiveDeliveriesQuery constructor",
	)
)

// GetCourierActiveDeliveriesQuery retrieves the deliveries a courier is
// currently carrying. A delivery counts as carried while it is in transit
// with the courier assigned, so the result size is bounded by the courier
// capacity limit.
//
// Example:
//
//	query, err := queries.NewGetCourierActiveDeliveriesQuery(courierID)
//	if err != nil {
//	    return err
//	}
//
//	carried, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list carried deliveries: %w", err)
//	}
type GetCourierActiveDeliveriesQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierActiveDeliveriesQuery creates a query for a courier's carried deliveries.
func NewGetCourierActiveDeliveriesQuery(courierID kernel.UUID) (GetCourierActiveDeliveriesQuery, error) {
	q := GetCourierActiveDeliveriesQuery{guard: guard.NewConstructorGuard()}

	if err := q.setCourierID(courierID); err != nil {
		return GetCourierActiveDeliveriesQuery{}, err
	}

	return q, nil
}

// CourierID returns the identifier of the courier whose load to list.
func (q GetCourierActiveDeliveriesQuery) CourierID() kernel.UUID {
	return q.courierID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCourierActiveDeliveriesQueryIsNotConstructed if validation fails.
func (q GetCourierActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierActiveDeliveriesQueryIsNotConstructed)
}

func (q *GetCourierActiveDeliveriesQuery) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	q.courierID = courierID
	return nil
}
