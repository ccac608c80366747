package commands_test

import (
	"testing"
	"time"

	"relaypost/internal/core/domain/model/account"
	"relaypost/internal/core/domain/model/delivery"
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/domain/model/station"
	"relaypost/internal/core/ports"

	"github.com/stretchr/testify/require"
)

// relayFixture wires a three station chain (s0 - s1 - s2) with one access
// point per station, which is enough to exercise every lifecycle command.
type relayFixture struct {
	stationIDs []kernel.UUID
	stations   []station.Station
	aps        []ports.AccessPointRef
}

func newRelayFixture(t *testing.T) relayFixture {
	t.Helper()

	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

	s0, err := station.NewStation(ids[0], "North Terminal", []kernel.UUID{ids[1]})
	require.NoError(t, err)
	s1, err := station.NewStation(ids[1], "Central", []kernel.UUID{ids[0], ids[2]})
	require.NoError(t, err)
	s2, err := station.NewStation(ids[2], "South Terminal", []kernel.UUID{ids[1]})
	require.NoError(t, err)

	aps := make([]ports.AccessPointRef, 3)
	for i := range aps {
		coords, err := kernel.NewCoordinates(40.0+float64(i), 29.0+float64(i))
		require.NoError(t, err)
		aps[i] = ports.AccessPointRef{
			ID:          kernel.NewUUID(),
			Name:        "AP " + ids[i].String()[:8],
			StationID:   ids[i],
			Coordinates: coords,
		}
	}

	return relayFixture{
		stationIDs: ids,
		stations:   []station.Station{s0, s1, s2},
		aps:        aps,
	}
}

// plannedPath returns the access point sequence over the whole chain.
func (f relayFixture) plannedPath() []kernel.UUID {
	return []kernel.UUID{f.aps[0].ID, f.aps[1].ID, f.aps[2].ID}
}

// newDelivery builds an awaiting delivery over the whole chain, costing 3.30
// (two hops under the default tariff).
func (f relayFixture) newDelivery(t *testing.T, shipperID kernel.UUID) *delivery.Delivery {
	t.Helper()

	cost, err := kernel.PointsFromString("3.30")
	require.NoError(t, err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(), nil, shipperID, f.plannedPath(), 2, cost,
		"PICKUP-CODE", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return d
}

func newTestAccount(t *testing.T, role account.Role, balance string) *account.Account {
	t.Helper()

	points, err := kernel.PointsFromString(balance)
	require.NoError(t, err)
	a, err := account.NewAccount(kernel.NewUUID(), "test account", role, points)
	require.NoError(t, err)
	return a
}
