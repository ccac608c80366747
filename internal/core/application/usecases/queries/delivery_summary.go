package queries

import (
	"database/sql"
	"time"

	"relaypost/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliverySummaryResponse is the list-view projection of a delivery, shared
// by the shipper and courier listing queries.
type DeliverySummaryResponse struct {
	ID              kernel.UUID
	ShipperID       kernel.UUID
	CourierID       *kernel.UUID
	OriginAPID      kernel.UUID
	DestinationAPID kernel.UUID
	CurrentAPID     kernel.UUID
	Status          string
	TotalCost       kernel.Points
	PaidAmount      kernel.Points
	Progress        float64
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// deliverySummaryColumns is the SELECT list matching scanDeliverySummaries.
const deliverySummaryColumns = `
	id,
	shipper_id,
	courier_id,
	origin_ap_id,
	destination_ap_id,
	current_ap_id,
	status,
	total_cost,
	paid_amount,
	progress,
	created_at,
	completed_at
`

// scanDeliverySummaries drains rows produced by a deliverySummaryColumns
// select into response structs. Callers own closing the rows.
func scanDeliverySummaries(rows *sql.Rows) ([]DeliverySummaryResponse, error) {
	summaries := make([]DeliverySummaryResponse, 0)

	for rows.Next() {
		var (
			id, shipperID, originAP, destAP, currentAP uuid.UUID
			courierID                                  uuid.NullUUID
			status                                     string
			totalCost, paidAmount                      decimal.Decimal
			progress                                   float64
			createdAt                                  time.Time
			completedAt                                sql.NullTime
		)

		err := rows.Scan(
			&id,
			&shipperID,
			&courierID,
			&originAP,
			&destAP,
			&currentAP,
			&status,
			&totalCost,
			&paidAmount,
			&progress,
			&createdAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		summary := DeliverySummaryResponse{
			Status:    status,
			Progress:  progress,
			CreatedAt: createdAt,
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.ShipperID, err = kernel.UUIDFromBytes(shipperID[:]); err != nil {
			return nil, err
		}
		if summary.OriginAPID, err = kernel.UUIDFromBytes(originAP[:]); err != nil {
			return nil, err
		}
		if summary.DestinationAPID, err = kernel.UUIDFromBytes(destAP[:]); err != nil {
			return nil, err
		}
		if summary.CurrentAPID, err = kernel.UUIDFromBytes(currentAP[:]); err != nil {
			return nil, err
		}

		if courierID.Valid {
			cID, cErr := kernel.UUIDFromBytes(courierID.UUID[:])
			if cErr != nil {
				return nil, cErr
			}
			summary.CourierID = &cID
		}

		if summary.TotalCost, err = kernel.NewPoints(totalCost); err != nil {
			return nil, err
		}
		if summary.PaidAmount, err = kernel.NewPoints(paidAmount); err != nil {
			return nil, err
		}

		if completedAt.Valid {
			t := completedAt.Time
			summary.CompletedAt = &t
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
