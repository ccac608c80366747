package http

import (
	"time"

	"relaypost/internal/core/application/usecases/queries"
)

// ErrorResponse is the wire shape for all error replies.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InitiateDeliveryRequest is the body for POST /api/v1/deliveries.
type InitiateDeliveryRequest struct {
	ShipperID       string  `json:"shipperId"`
	ProductID       *string `json:"productId,omitempty"`
	OriginAPID      string  `json:"originAccessPointId"`
	DestinationAPID string  `json:"destinationAccessPointId"`
}

// InitiateDeliveryResponse returns the id assigned to a new delivery.
type InitiateDeliveryResponse struct {
	ID string `json:"id"`
}

// ClaimPackageRequest is the body for POST /api/v1/deliveries/:id/claim.
type ClaimPackageRequest struct {
	CourierID string `json:"courierId"`
}

// DropoffPackageRequest is the body for POST /api/v1/deliveries/:id/dropoff.
// Mode selects how progress is measured ("hops" or "nodes"); empty defaults
// to hops.
type DropoffPackageRequest struct {
	CourierID     string `json:"courierId"`
	AccessPointID string `json:"accessPointId"`
	Mode          string `json:"mode,omitempty"`
}

// RecipientPickupRequest is the body for POST /api/v1/deliveries/:id/pickup.
type RecipientPickupRequest struct {
	Code string `json:"code"`
}

// DeliveryView is the tracking representation of a delivery.
type DeliveryView struct {
	ID                string     `json:"id"`
	ProductID         *string    `json:"productId,omitempty"`
	ShipperID         string     `json:"shipperId"`
	CourierID         *string    `json:"courierId,omitempty"`
	OriginAPID        string     `json:"originAccessPointId"`
	DestinationAPID   string     `json:"destinationAccessPointId"`
	CurrentAPID       string     `json:"currentAccessPointId"`
	Status            string     `json:"status"`
	TotalCost         string     `json:"totalCost"`
	ReservedAmount    string     `json:"reservedAmount"`
	PaidAmount        string     `json:"paidAmount"`
	EstimatedDistance int        `json:"estimatedDistance"`
	ActualDistance    int        `json:"actualDistance"`
	Progress          float64    `json:"progress"`
	CreatedAt         time.Time  `json:"createdAt"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	Legs              []LegView  `json:"legs"`
}

// LegView is one relay leg within a delivery view.
type LegView struct {
	ID        string     `json:"id"`
	CourierID string     `json:"courierId"`
	FromAPID  string     `json:"fromAccessPointId"`
	ToAPID    string     `json:"toAccessPointId"`
	PickupAt  time.Time  `json:"pickupAt"`
	DropoffAt *time.Time `json:"dropoffAt,omitempty"`
	Distance  int        `json:"distance"`
	Earnings  string     `json:"earnings"`
	Status    string     `json:"status"`
}

// DeliverySummaryView is the list representation of a delivery.
type DeliverySummaryView struct {
	ID              string     `json:"id"`
	ShipperID       string     `json:"shipperId"`
	CourierID       *string    `json:"courierId,omitempty"`
	OriginAPID      string     `json:"originAccessPointId"`
	DestinationAPID string     `json:"destinationAccessPointId"`
	CurrentAPID     string     `json:"currentAccessPointId"`
	Status          string     `json:"status"`
	TotalCost       string     `json:"totalCost"`
	PaidAmount      string     `json:"paidAmount"`
	Progress        float64    `json:"progress"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

func deliveryViewFromResponse(resp queries.GetDeliveryByIDQueryResponse) DeliveryView {
	view := DeliveryView{
		ID:                resp.ID.String(),
		ShipperID:         resp.ShipperID.String(),
		OriginAPID:        resp.OriginAPID.String(),
		DestinationAPID:   resp.DestinationAPID.String(),
		CurrentAPID:       resp.CurrentAPID.String(),
		Status:            resp.Status,
		TotalCost:         resp.TotalCost.String(),
		ReservedAmount:    resp.ReservedAmount.String(),
		PaidAmount:        resp.PaidAmount.String(),
		EstimatedDistance: resp.EstimatedDistance,
		ActualDistance:    resp.ActualDistance,
		Progress:          resp.Progress,
		CreatedAt:         resp.CreatedAt,
		CompletedAt:       resp.CompletedAt,
		Legs:              make([]LegView, 0, len(resp.Legs)),
	}

	if resp.ProductID != nil {
		s := resp.ProductID.String()
		view.ProductID = &s
	}
	if resp.CourierID != nil {
		s := resp.CourierID.String()
		view.CourierID = &s
	}

	for _, leg := range resp.Legs {
		view.Legs = append(view.Legs, LegView{
			ID:        leg.ID.String(),
			CourierID: leg.CourierID.String(),
			FromAPID:  leg.FromAPID.String(),
			ToAPID:    leg.ToAPID.String(),
			PickupAt:  leg.PickupAt,
			DropoffAt: leg.DropoffAt,
			Distance:  leg.Distance,
			Earnings:  leg.Earnings.String(),
			Status:    leg.Status,
		})
	}

	return view
}

func summaryViewFromResponse(resp queries.DeliverySummaryResponse) DeliverySummaryView {
	view := DeliverySummaryView{
		ID:              resp.ID.String(),
		ShipperID:       resp.ShipperID.String(),
		OriginAPID:      resp.OriginAPID.String(),
		DestinationAPID: resp.DestinationAPID.String(),
		CurrentAPID:     resp.CurrentAPID.String(),
		Status:          resp.Status,
		TotalCost:       resp.TotalCost.String(),
		PaidAmount:      resp.PaidAmount.String(),
		Progress:        resp.Progress,
		CreatedAt:       resp.CreatedAt,
		CompletedAt:     resp.CompletedAt,
	}

	if resp.CourierID != nil {
		s := resp.CourierID.String()
		view.CourierID = &s
	}

	return view
}
