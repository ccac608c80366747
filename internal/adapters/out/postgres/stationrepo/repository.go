package stationrepo

import (
	"context"

	"relaypost/internal/core/domain/model/station"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStationRepository implements StationRepository using GORM.
type GormStationRepository struct {
	db *gorm.DB
}

// NewGormStationRepository creates a new GORM station repository.
func NewGormStationRepository(db *gorm.DB) *GormStationRepository {
	return &GormStationRepository{db: db}
}

// GetAll returns every station with its neighbor links, in seeding order.
func (r *GormStationRepository) GetAll(ctx context.Context) ([]station.Station, error) {
	var dtos []StationDTO
	if err := r.db.WithContext(ctx).Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	stations := make([]station.Station, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}

	return stations, nil
}

// Seed writes the station graph in the given order, keeping existing rows.
// Called once at startup; the graph is immutable afterwards.
func (r *GormStationRepository) Seed(ctx context.Context, stations []station.Station) error {
	if len(stations) == 0 {
		return nil
	}

	dtos := make([]StationDTO, 0, len(stations))
	for seq, s := range stations {
		dtos = append(dtos, fromDomain(seq, s))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos).Error
}
