package ports

import (
	"context"

	"relaypost/internal/core/domain/model/station"
)

// StationRepository loads the static transit graph. Stations are seeded once
// and immutable at runtime, so the whole set is read in one call at startup
// and on demand by handlers that need fresh topology.
type StationRepository interface {
	// GetAll returns every station with its neighbor links, in stable
	// seeding order so path tie-breaks stay deterministic.
	GetAll(ctx context.Context) ([]station.Station, error)
}
