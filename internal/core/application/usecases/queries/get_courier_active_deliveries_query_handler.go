package queries

import (
	"context"

	"relaypost/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetCourierActiveDeliveriesQueryHandler lists the deliveries a courier is
// carrying right now.
//
// Example:
//
//	handler := queries.NewGetCourierActiveDeliveriesQueryHandler(db)
//	query, _ := queries.NewGetCourierActiveDeliveriesQuery(courierID)
//
//	carried, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list carried deliveries: %v", err)
//	    return err
//	}
type GetCourierActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierActiveDeliveriesQueryHandler creates a handler for courier load queries.
// Requires a GORM database connection for query execution.
func NewGetCourierActiveDeliveriesQueryHandler(db *gorm.DB) GetCourierActiveDeliveriesQueryHandler {
	return GetCourierActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query and returns the in-transit deliveries assigned
// to the courier, oldest pickup first.
func (h GetCourierActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetCourierActiveDeliveriesQuery,
) ([]DeliverySummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliverySummaryColumns+`
		FROM deliveries
		WHERE courier_id = ? AND status = ?
		ORDER BY created_at, id
	`, query.CourierID().Bytes(), delivery.InTransit.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeliverySummaries(rows)
}
