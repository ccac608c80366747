package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDeliveryByIDQueryHandler reads a single delivery view from the database.
//
// Example:
//
//	handler := queries.NewGetDeliveryByIDQueryHandler(db)
//	query, _ := queries.NewGetDeliveryByIDQuery(deliveryID)
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return echo.NewHTTPError(http.StatusNotFound)
//	}
type GetDeliveryByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryByIDQueryHandler creates a handler for single-delivery queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryByIDQueryHandler(db *gorm.DB) GetDeliveryByIDQueryHandler {
	return GetDeliveryByIDQueryHandler{db: db}
}

// Handle executes the query and returns the delivery tracking view.
// Returns errs.ObjectNotFoundError when the delivery does not exist.
// Legs are returned in relay order (by sequence).
func (h GetDeliveryByIDQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryByIDQuery,
) (GetDeliveryByIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			shipper_id,
			courier_id,
			origin_ap_id,
			destination_ap_id,
			current_ap_id,
			status,
			total_cost,
			reserved_amount,
			paid_amount,
			estimated_distance,
			actual_distance,
			progress,
			created_at,
			completed_at
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().Bytes()).Row()

	var (
		id, originAP, destAP, currentAP, shipperID uuid.UUID
		productID, courierID                       uuid.NullUUID
		status                                     string
		totalCost, reservedAmount, paidAmount      decimal.Decimal
		estimatedDistance, actualDistance          int
		progress                                   float64
		createdAt                                  time.Time
		completedAt                                sql.NullTime
	)

	err := row.Scan(
		&id,
		&productID,
		&shipperID,
		&courierID,
		&originAP,
		&destAP,
		&currentAP,
		&status,
		&totalCost,
		&reservedAmount,
		&paidAmount,
		&estimatedDistance,
		&actualDistance,
		&progress,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDeliveryByIDQueryResponse{},
				errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
		}
		return GetDeliveryByIDQueryResponse{}, err
	}

	resp, err := buildDeliveryResponse(
		id, productID, shipperID, courierID, originAP, destAP, currentAP,
		status, totalCost, reservedAmount, paidAmount,
		estimatedDistance, actualDistance, progress, createdAt, completedAt,
	)
	if err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}

	legs, err := h.fetchLegs(ctx, query.DeliveryID())
	if err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}
	resp.Legs = legs

	return resp, nil
}

func (h GetDeliveryByIDQueryHandler) fetchLegs(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]DeliveryLegResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			courier_id,
			from_ap_id,
			to_ap_id,
			pickup_at,
			dropoff_at,
			distance,
			earnings,
			status
		FROM delivery_legs
		WHERE delivery_id = ?
		ORDER BY seq
	`, deliveryID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	legs := make([]DeliveryLegResponse, 0)
	for rows.Next() {
		var (
			id, courierID, fromAP, toAP uuid.UUID
			pickupAt                    time.Time
			dropoffAt                   sql.NullTime
			distance                    int
			earnings                    decimal.Decimal
			status                      string
		)

		err = rows.Scan(
			&id,
			&courierID,
			&fromAP,
			&toAP,
			&pickupAt,
			&dropoffAt,
			&distance,
			&earnings,
			&status,
		)
		if err != nil {
			return nil, err
		}

		leg, legErr := buildLegResponse(
			id, courierID, fromAP, toAP, pickupAt, dropoffAt, distance, earnings, status,
		)
		if legErr != nil {
			return nil, legErr
		}
		legs = append(legs, leg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return legs, nil
}

func buildDeliveryResponse(
	id uuid.UUID,
	productID uuid.NullUUID,
	shipperID uuid.UUID,
	courierID uuid.NullUUID,
	originAP, destAP, currentAP uuid.UUID,
	status string,
	totalCost, reservedAmount, paidAmount decimal.Decimal,
	estimatedDistance, actualDistance int,
	progress float64,
	createdAt time.Time,
	completedAt sql.NullTime,
) (GetDeliveryByIDQueryResponse, error) {
	resp := GetDeliveryByIDQueryResponse{
		Status:            status,
		EstimatedDistance: estimatedDistance,
		ActualDistance:    actualDistance,
		Progress:          progress,
		CreatedAt:         createdAt,
	}

	var err error
	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}
	if resp.ShipperID, err = kernel.UUIDFromBytes(shipperID[:]); err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}
	if resp.OriginAPID, err = kernel.UUIDFromBytes(originAP[:]); err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}
	if resp.DestinationAPID, err = kernel.UUIDFromBytes(destAP[:]); err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}
	if resp.CurrentAPID, err = kernel.UUIDFromBytes(currentAP[:]); err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}

	if productID.Valid {
		pID, pErr := kernel.UUIDFromBytes(productID.UUID[:])
		if pErr != nil {
			return GetDeliveryByIDQueryResponse{}, pErr
		}
		resp.ProductID = &pID
	}
	if courierID.Valid {
		cID, cErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if cErr != nil {
			return GetDeliveryByIDQueryResponse{}, cErr
		}
		resp.CourierID = &cID
	}

	if resp.TotalCost, err = kernel.NewPoints(totalCost); err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}
	if resp.ReservedAmount, err = kernel.NewPoints(reservedAmount); err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}
	if resp.PaidAmount, err = kernel.NewPoints(paidAmount); err != nil {
		return GetDeliveryByIDQueryResponse{}, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		resp.CompletedAt = &t
	}

	return resp, nil
}

func buildLegResponse(
	id, courierID, fromAP, toAP uuid.UUID,
	pickupAt time.Time,
	dropoffAt sql.NullTime,
	distance int,
	earnings decimal.Decimal,
	status string,
) (DeliveryLegResponse, error) {
	leg := DeliveryLegResponse{
		PickupAt: pickupAt,
		Distance: distance,
		Status:   status,
	}

	var err error
	if leg.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return DeliveryLegResponse{}, err
	}
	if leg.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
		return DeliveryLegResponse{}, err
	}
	if leg.FromAPID, err = kernel.UUIDFromBytes(fromAP[:]); err != nil {
		return DeliveryLegResponse{}, err
	}
	if leg.ToAPID, err = kernel.UUIDFromBytes(toAP[:]); err != nil {
		return DeliveryLegResponse{}, err
	}
	if leg.Earnings, err = kernel.NewPoints(earnings); err != nil {
		return DeliveryLegResponse{}, err
	}

	if dropoffAt.Valid {
		t := dropoffAt.Time
		leg.DropoffAt = &t
	}

	return leg, nil
}
