package accesspointrepo

import (
	"context"
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/ports"
	"relaypost/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccessPointRepository implements AccessPointLookup using GORM.
type GormAccessPointRepository struct {
	db *gorm.DB
}

// NewGormAccessPointRepository creates a new GORM access point repository.
func NewGormAccessPointRepository(db *gorm.DB) *GormAccessPointRepository {
	return &GormAccessPointRepository{db: db}
}

// ByID resolves an access point by its unique identifier.
func (r *GormAccessPointRepository) ByID(ctx context.Context, id kernel.UUID) (ports.AccessPointRef, error) {
	if err := id.Validate(); err != nil {
		return ports.AccessPointRef{}, err
	}

	var dto AccessPointDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AccessPointRef{}, errs.NewObjectNotFoundError("access point", id.String())
		}
		return ports.AccessPointRef{}, err
	}

	return toRef(dto)
}

// PrimaryByStation returns the designated access point of a station.
// The lowest access point id wins, which keeps the choice deterministic
// for a given station.
func (r *GormAccessPointRepository) PrimaryByStation(ctx context.Context, stationID kernel.UUID) (ports.AccessPointRef, error) {
	if err := stationID.Validate(); err != nil {
		return ports.AccessPointRef{}, err
	}

	var dto AccessPointDTO
	err := r.db.WithContext(ctx).
		Where("station_id = ?", stationID.Bytes()).
		Order("id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AccessPointRef{}, errs.NewObjectNotFoundError("access point", "primary for station "+stationID.String())
		}
		return ports.AccessPointRef{}, err
	}

	return toRef(dto)
}

// Seed writes the access point set, keeping existing rows.
// Called once at startup alongside the station graph.
func (r *GormAccessPointRepository) Seed(ctx context.Context, refs []ports.AccessPointRef) error {
	if len(refs) == 0 {
		return nil
	}

	dtos := make([]AccessPointDTO, 0, len(refs))
	for _, ref := range refs {
		dtos = append(dtos, fromRef(ref))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos).Error
}
