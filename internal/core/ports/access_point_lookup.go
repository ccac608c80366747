package ports

import (
	"context"

	"relaypost/internal/core/domain/model/kernel"
)

// AccessPointRef is the read model the core needs from an access point:
// its identity, the station it is bound to, and where it is.
type AccessPointRef struct {
	ID          kernel.UUID
	Name        string
	StationID   kernel.UUID
	Coordinates kernel.Coordinates
}

// AccessPointLookup resolves access points owned by the persistence layer.
// Access points map many-to-one onto stations; every path computation first
// resolves access point ids to station ids through this port so the two id
// spaces never mix.
type AccessPointLookup interface {
	// ByID resolves an access point by its unique identifier.
	// Returns errs.ObjectNotFoundError when the id is unknown.
	ByID(ctx context.Context, id kernel.UUID) (AccessPointRef, error)

	// PrimaryByStation returns the designated access point of a station,
	// used to place intermediate hand-off points on a planned path.
	// The choice is deterministic for a given station.
	PrimaryByStation(ctx context.Context, stationID kernel.UUID) (AccessPointRef, error)
}
