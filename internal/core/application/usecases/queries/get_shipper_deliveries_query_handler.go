package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetShipperDeliveriesQueryHandler lists a shipper's deliveries from the database.
//
// Example:
//
//	handler := queries.NewGetShipperDeliveriesQueryHandler(db)
//	query, _ := queries.NewGetShipperDeliveriesQuery(shipperID)
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list deliveries: %v", err)
//	    return err
//	}
type GetShipperDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetShipperDeliveriesQueryHandler creates a handler for shipper delivery listings.
// Requires a GORM database connection for query execution.
func NewGetShipperDeliveriesQueryHandler(db *gorm.DB) GetShipperDeliveriesQueryHandler {
	return GetShipperDeliveriesQueryHandler{db: db}
}

// Handle executes the query and returns the shipper's deliveries,
// newest first with the delivery id as a tie-break.
func (h GetShipperDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetShipperDeliveriesQuery,
) ([]DeliverySummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliverySummaryColumns+`
		FROM deliveries
		WHERE shipper_id = ?
		ORDER BY created_at DESC, id
	`, query.ShipperID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeliverySummaries(rows)
}
