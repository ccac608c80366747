package queries

import (
	"errors"

	"relaypost/internal/pkg/guard"
)

var (
	ErrGetDeliveryStatsQueryIsNotConstructed = errors.New(
		"GetDeliveryStatsQuery must be created via NewGetDeliveryStatsQuery constructor",
	)
)

// GetDeliveryStatsQuery counts deliveries per status. The digest job logs
// the result periodically.
//
// Example:
//
//	query := queries.NewGetDeliveryStatsQuery()
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//
//	fmt.Printf("awaiting=%d in_transit=%d ready=%d\n",
//	    stats.AwaitingPickup, stats.InTransit, stats.ReadyForRecipient)
type GetDeliveryStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryStatsQuery creates a query for delivery status counts.
// This is a parameterless query.
func NewGetDeliveryStatsQuery() GetDeliveryStatsQuery {
	return GetDeliveryStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryStatsQueryIsNotConstructed if validation fails.
func (q GetDeliveryStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatsQueryIsNotConstructed)
}

// GetDeliveryStatsQueryResponse holds delivery counts per lifecycle status.
type GetDeliveryStatsQueryResponse struct {
	AwaitingPickup    int
	InTransit         int
	ReadyForRecipient int
	Completed         int
	Cancelled         int
}
