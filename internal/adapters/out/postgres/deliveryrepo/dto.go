// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, handling conversion between domain entities and their
// database representation, including the child relay legs.
package deliveryrepo

import (
	"time"

	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Indexed by shipper, courier and status for the listing queries
// and the courier capacity count.
type DeliveryDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID         *uuid.UUID      `gorm:"type:uuid"`
	ShipperID         uuid.UUID       `gorm:"type:uuid;index"`
	CourierID         *uuid.UUID      `gorm:"type:uuid;index"`
	OriginAPID        uuid.UUID       `gorm:"column:origin_ap_id;type:uuid"`
	DestinationAPID   uuid.UUID       `gorm:"column:destination_ap_id;type:uuid"`
	CurrentAPID       uuid.UUID       `gorm:"column:current_ap_id;type:uuid"`
	PlannedPath       pq.StringArray  `gorm:"type:text[]"`
	Status            string          `gorm:"type:varchar(32);index"`
	TotalCost         decimal.Decimal `gorm:"type:numeric(12,2)"`
	ReservedAmount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaidAmount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	EstimatedDistance int
	ActualDistance    int
	Progress          float64
	VerificationCode  string `gorm:"type:varchar(64)"`
	CreatedAt         time.Time
	CompletedAt       *time.Time
	Legs              []LegDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// LegDTO represents one relay leg row. Legs are ordered within a delivery by
// the seq column, which records relay order.
type LegDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index"`
	Seq        int
	CourierID  uuid.UUID `gorm:"type:uuid;index"`
	FromAPID   uuid.UUID `gorm:"column:from_ap_id;type:uuid"`
	ToAPID     uuid.UUID `gorm:"column:to_ap_id;type:uuid"`
	PickupAt   time.Time
	DropoffAt  *time.Time
	Distance   int
	Earnings   decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status     string          `gorm:"type:varchar(32)"`
}

// TableName specifies the database table name for leg entities.
func (LegDTO) TableName() string {
	return "delivery_legs"
}

// fromDomain converts a delivery domain aggregate to its database
// representation, including optional product and courier references and all
// relay legs in order.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var productID *uuid.UUID
	if id := aggregate.ProductID(); id != nil {
		raw := id.Bytes()
		productID = &raw
	}

	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	path := aggregate.PlannedPath()
	plannedPath := make(pq.StringArray, 0, len(path))
	for _, ap := range path {
		plannedPath = append(plannedPath, ap.String())
	}

	legs := aggregate.Legs()
	legDTOs := make([]LegDTO, 0, len(legs))
	for seq, leg := range legs {
		legDTOs = append(legDTOs, legFromDomain(aggregate.ID(), seq, leg))
	}

	return DeliveryDTO{
		ID:                aggregate.ID().Bytes(),
		ProductID:         productID,
		ShipperID:         aggregate.ShipperID().Bytes(),
		CourierID:         courierID,
		OriginAPID:        aggregate.OriginAP().Bytes(),
		DestinationAPID:   aggregate.DestinationAP().Bytes(),
		CurrentAPID:       aggregate.CurrentAP().Bytes(),
		PlannedPath:       plannedPath,
		Status:            aggregate.Status().String(),
		TotalCost:         aggregate.TotalCost().Decimal(),
		ReservedAmount:    aggregate.ReservedAmount().Decimal(),
		PaidAmount:        aggregate.PaidAmount().Decimal(),
		EstimatedDistance: aggregate.EstimatedDistance(),
		ActualDistance:    aggregate.ActualDistance(),
		Progress:          aggregate.Progress(),
		VerificationCode:  aggregate.VerificationCode(),
		CreatedAt:         aggregate.CreatedAt(),
		CompletedAt:       aggregate.CompletedAt(),
		Legs:              legDTOs,
	}
}

func legFromDomain(deliveryID kernel.UUID, seq int, leg *delivery.Leg) LegDTO {
	return LegDTO{
		ID:         leg.ID().Bytes(),
		DeliveryID: deliveryID.Bytes(),
		Seq:        seq,
		CourierID:  leg.CourierID().Bytes(),
		FromAPID:   leg.From().Bytes(),
		ToAPID:     leg.To().Bytes(),
		PickupAt:   leg.PickupAt(),
		DropoffAt:  leg.DropoffAt(),
		Distance:   leg.Distance(),
		Earnings:   leg.Earnings().Decimal(),
		Status:     leg.Status().String(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate including legs using RestoreDelivery,
// which re-validates the path shape and the escrow bound.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipperID, err := kernel.UUIDFromBytes(dto.ShipperID[:])
	if err != nil {
		return nil, err
	}

	var productID *kernel.UUID
	if dto.ProductID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.ProductID)[:])
		if pErr != nil {
			return nil, pErr
		}
		productID = &pID
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if cErr != nil {
			return nil, cErr
		}
		courierID = &cID
	}

	plannedPath := make([]kernel.UUID, 0, len(dto.PlannedPath))
	for _, s := range dto.PlannedPath {
		ap, apErr := kernel.UUIDFromString(s)
		if apErr != nil {
			return nil, apErr
		}
		plannedPath = append(plannedPath, ap)
	}

	currentAP, err := kernel.UUIDFromBytes(dto.CurrentAPID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	totalCost, err := kernel.NewPoints(dto.TotalCost)
	if err != nil {
		return nil, err
	}
	reservedAmount, err := kernel.NewPoints(dto.ReservedAmount)
	if err != nil {
		return nil, err
	}
	paidAmount, err := kernel.NewPoints(dto.PaidAmount)
	if err != nil {
		return nil, err
	}

	legs := make([]*delivery.Leg, 0, len(dto.Legs))
	for _, legDTO := range dto.Legs {
		leg, legErr := legToDomain(legDTO)
		if legErr != nil {
			return nil, legErr
		}
		legs = append(legs, leg)
	}

	return delivery.RestoreDelivery(
		id,
		productID,
		shipperID,
		courierID,
		plannedPath,
		currentAP,
		status,
		legs,
		totalCost,
		reservedAmount,
		paidAmount,
		dto.EstimatedDistance,
		dto.ActualDistance,
		dto.Progress,
		dto.VerificationCode,
		dto.CreatedAt,
		dto.CompletedAt,
	)
}

func legToDomain(dto LegDTO) (*delivery.Leg, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	from, err := kernel.UUIDFromBytes(dto.FromAPID[:])
	if err != nil {
		return nil, err
	}

	to, err := kernel.UUIDFromBytes(dto.ToAPID[:])
	if err != nil {
		return nil, err
	}

	earnings, err := kernel.NewPoints(dto.Earnings)
	if err != nil {
		return nil, err
	}

	status, err := delivery.LegStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreLeg(
		id,
		courierID,
		from,
		to,
		dto.PickupAt,
		dto.DropoffAt,
		dto.Distance,
		earnings,
		status,
	)
}
