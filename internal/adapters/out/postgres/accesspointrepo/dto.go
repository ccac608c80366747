// Package accesspointrepo provides persistence for access points, the
// physical pickup and drop-off counters bound to stations. Access points map
// many-to-one onto stations.
package accesspointrepo

import (
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/ports"

	"github.com/google/uuid"
)

// AccessPointDTO represents the database structure for persisting access points.
type AccessPointDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	StationID uuid.UUID `gorm:"type:uuid;index"`
	Name      string    `gorm:"type:varchar(255)"`
	Latitude  float64
	Longitude float64
}

// TableName specifies the database table name for access point entities.
func (AccessPointDTO) TableName() string {
	return "access_points"
}

// fromRef converts an access point read model to its database representation.
func fromRef(ref ports.AccessPointRef) AccessPointDTO {
	return AccessPointDTO{
		ID:        ref.ID.Bytes(),
		StationID: ref.StationID.Bytes(),
		Name:      ref.Name,
		Latitude:  ref.Coordinates.Latitude(),
		Longitude: ref.Coordinates.Longitude(),
	}
}

// toRef converts a database DTO to the access point read model.
func toRef(dto AccessPointDTO) (ports.AccessPointRef, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.AccessPointRef{}, err
	}

	stationID, err := kernel.UUIDFromBytes(dto.StationID[:])
	if err != nil {
		return ports.AccessPointRef{}, err
	}

	coords, err := kernel.NewCoordinates(dto.Latitude, dto.Longitude)
	if err != nil {
		return ports.AccessPointRef{}, err
	}

	return ports.AccessPointRef{
		ID:          id,
		Name:        dto.Name,
		StationID:   stationID,
		Coordinates: coords,
	}, nil
}
