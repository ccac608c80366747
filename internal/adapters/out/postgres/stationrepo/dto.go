// Package stationrepo provides data transfer objects and mapping functions
// for the static station graph. Stations are seeded at startup and read-only
// afterwards; the seq column preserves seeding order so BFS tie-breaks stay
// deterministic across restarts.
package stationrepo

import (
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/domain/model/station"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// StationDTO represents the database structure for persisting stations.
// Neighbor links are stored as an array of station UUIDs in adjacency order.
type StationDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Seq       int            `gorm:"uniqueIndex"`
	Name      string         `gorm:"type:varchar(255)"`
	Neighbors pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for station entities.
func (StationDTO) TableName() string {
	return "stations"
}

// fromDomain converts a station value object to its database representation.
func fromDomain(seq int, s station.Station) StationDTO {
	neighbors := make(pq.StringArray, 0, len(s.Neighbors()))
	for _, n := range s.Neighbors() {
		neighbors = append(neighbors, n.String())
	}

	return StationDTO{
		ID:        s.ID().Bytes(),
		Seq:       seq,
		Name:      s.Name(),
		Neighbors: neighbors,
	}
}

// toDomain converts a database DTO to a station value object.
func toDomain(dto StationDTO) (station.Station, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return station.Station{}, err
	}

	neighbors := make([]kernel.UUID, 0, len(dto.Neighbors))
	for _, s := range dto.Neighbors {
		n, nErr := kernel.UUIDFromString(s)
		if nErr != nil {
			return station.Station{}, nErr
		}
		neighbors = append(neighbors, n)
	}

	return station.NewStation(id, dto.Name, neighbors)
}
