package station

import (
	"errors"

	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/pkg/errs"
	"relaypost/internal/pkg/guard"
)

// ErrStationIsNotConstructed is returned when using an improperly initialized Station.
var ErrStationIsNotConstructed = errors.New("Station must be created via NewStation constructor")

// Station is one node of the transit graph: an identifier, a display name,
// and the ordered list of directly linked station ids. Neighbor order is
// significant: it fixes the breadth-first tie-break order of the Network.
type Station struct {
	id        kernel.UUID
	name      string
	neighbors []kernel.UUID

	guard guard.ConstructorGuard
}

// NewStation creates a validated Station.
// The neighbor list may be empty (an isolated station) but every entry must
// be a valid UUID distinct from the station itself.
func NewStation(id kernel.UUID, name string, neighbors []kernel.UUID) (Station, error) {
	if err := id.Validate(); err != nil {
		return Station{}, err
	}
	if name == "" {
		return Station{}, errs.NewValueIsRequiredError("name")
	}

	for _, n := range neighbors {
		if err := n.Validate(); err != nil {
			return Station{}, err
		}
		if n.IsEqual(id) {
			return Station{}, errs.NewValueIsInvalidError("neighbors")
		}
	}

	return Station{
		id:        id,
		name:      name,
		neighbors: append([]kernel.UUID(nil), neighbors...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Station was built through NewStation.
func (s Station) Validate() error {
	return s.guard.Validate(ErrStationIsNotConstructed)
}

// ID returns the station identifier.
func (s Station) ID() kernel.UUID {
	return s.id
}

// Name returns the human-readable station name.
func (s Station) Name() string {
	return s.name
}

// Neighbors returns a copy of the ordered neighbor id list.
func (s Station) Neighbors() []kernel.UUID {
	return append([]kernel.UUID(nil), s.neighbors...)
}
