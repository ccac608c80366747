package queries

import (
	"context"

	"relaypost/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetDeliveryStatsQueryHandler counts deliveries grouped by status.
type GetDeliveryStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryStatsQueryHandler creates a handler for delivery status counts.
// Requires a GORM database connection for query execution.
func NewGetDeliveryStatsQueryHandler(db *gorm.DB) GetDeliveryStatsQueryHandler {
	return GetDeliveryStatsQueryHandler{db: db}
}

// Handle executes the query and returns delivery counts per status.
// Statuses with no deliveries report zero.
func (h GetDeliveryStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatsQuery,
) (GetDeliveryStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM deliveries
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}
	defer rows.Close()

	var stats GetDeliveryStatsQueryResponse
	for rows.Next() {
		var status string
		var count int

		if err = rows.Scan(&status, &count); err != nil {
			return GetDeliveryStatsQueryResponse{}, err
		}

		switch status {
		case delivery.AwaitingPickup.String():
			stats.AwaitingPickup = count
		case delivery.InTransit.String():
			stats.InTransit = count
		case delivery.ReadyForRecipient.String():
			stats.ReadyForRecipient = count
		case delivery.Completed.String():
			stats.Completed = count
		case delivery.Cancelled.String():
			stats.Cancelled = count
		}
	}

	if err = rows.Err(); err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	return stats, nil
}
