package cmd

import (
	"context"
	"fmt"

	"relaypost/internal/adapters/out/postgres/accesspointrepo"
	"relaypost/internal/adapters/out/postgres/stationrepo"
	"relaypost/internal/core/domain/model/kernel"
	"relaypost/internal/core/domain/model/station"
	"relaypost/internal/core/ports"

	"gorm.io/gorm"
)

// Seed graph: a five-station relay line with a branch off the center.
//
//	Harbor - Riverside - Central - Uptown - Airport
//	                        |
//	                     Museum
//
// Station and access point ids are fixed so planned paths and derived views
// stay stable across restarts.
var seedStations = []struct {
	id        string
	name      string
	neighbors []string
}{
	{
		id:        "5f0b3a52-0000-4000-8000-000000000001",
		name:      "Harbor",
		neighbors: []string{"5f0b3a52-0000-4000-8000-000000000002"},
	},
	{
		id:   "5f0b3a52-0000-4000-8000-000000000002",
		name: "Riverside",
		neighbors: []string{
			"5f0b3a52-0000-4000-8000-000000000001",
			"5f0b3a52-0000-4000-8000-000000000003",
		},
	},
	{
		id:   "5f0b3a52-0000-4000-8000-000000000003",
		name: "Central",
		neighbors: []string{
			"5f0b3a52-0000-4000-8000-000000000002",
			"5f0b3a52-0000-4000-8000-000000000004",
			"5f0b3a52-0000-4000-8000-000000000006",
		},
	},
	{
		id:   "5f0b3a52-0000-4000-8000-000000000004",
		name: "Uptown",
		neighbors: []string{
			"5f0b3a52-0000-4000-8000-000000000003",
			"5f0b3a52-0000-4000-8000-000000000005",
		},
	},
	{
		id:        "5f0b3a52-0000-4000-8000-000000000005",
		name:      "Airport",
		neighbors: []string{"5f0b3a52-0000-4000-8000-000000000004"},
	},
	{
		id:        "5f0b3a52-0000-4000-8000-000000000006",
		name:      "Museum",
		neighbors: []string{"5f0b3a52-0000-4000-8000-000000000003"},
	},
}

var seedAccessPoints = []struct {
	id        string
	stationID string
	name      string
	lat, lon  float64
}{
	{"7c1d2e90-0000-4000-8000-000000000001", "5f0b3a52-0000-4000-8000-000000000001", "Harbor Locker", 40.7002, -74.0120},
	{"7c1d2e90-0000-4000-8000-000000000002", "5f0b3a52-0000-4000-8000-000000000002", "Riverside Counter", 40.7066, -74.0031},
	{"7c1d2e90-0000-4000-8000-000000000003", "5f0b3a52-0000-4000-8000-000000000003", "Central Hall", 40.7128, -74.0060},
	{"7c1d2e90-0000-4000-8000-000000000004", "5f0b3a52-0000-4000-8000-000000000003", "Central North Kiosk", 40.7140, -74.0055},
	{"7c1d2e90-0000-4000-8000-000000000005", "5f0b3a52-0000-4000-8000-000000000004", "Uptown Locker", 40.7239, -73.9982},
	{"7c1d2e90-0000-4000-8000-000000000006", "5f0b3a52-0000-4000-8000-000000000005", "Airport Desk", 40.7320, -73.9875},
	{"7c1d2e90-0000-4000-8000-000000000007", "5f0b3a52-0000-4000-8000-000000000006", "Museum Counter", 40.7170, -74.0141},
}

// SeedStationGraph writes the default transit graph and access points.
// Existing rows are kept, so re-running at every startup is safe.
func SeedStationGraph(ctx context.Context, db *gorm.DB) error {
	stations := make([]station.Station, 0, len(seedStations))
	for _, def := range seedStations {
		id, err := kernel.UUIDFromString(def.id)
		if err != nil {
			return fmt.Errorf("invalid seed station id %q: %w", def.id, err)
		}

		neighbors := make([]kernel.UUID, 0, len(def.neighbors))
		for _, n := range def.neighbors {
			nID, nErr := kernel.UUIDFromString(n)
			if nErr != nil {
				return fmt.Errorf("invalid seed neighbor id %q: %w", n, nErr)
			}
			neighbors = append(neighbors, nID)
		}

		s, err := station.NewStation(id, def.name, neighbors)
		if err != nil {
			return fmt.Errorf("invalid seed station %q: %w", def.name, err)
		}
		stations = append(stations, s)
	}

	if err := stationrepo.NewGormStationRepository(db).Seed(ctx, stations); err != nil {
		return fmt.Errorf("failed to seed stations: %w", err)
	}

	refs := make([]ports.AccessPointRef, 0, len(seedAccessPoints))
	for _, def := range seedAccessPoints {
		id, err := kernel.UUIDFromString(def.id)
		if err != nil {
			return fmt.Errorf("invalid seed access point id %q: %w", def.id, err)
		}
		stationID, err := kernel.UUIDFromString(def.stationID)
		if err != nil {
			return fmt.Errorf("invalid seed access point station id %q: %w", def.stationID, err)
		}
		coords, err := kernel.NewCoordinates(def.lat, def.lon)
		if err != nil {
			return fmt.Errorf("invalid seed access point coordinates for %q: %w", def.name, err)
		}

		refs = append(refs, ports.AccessPointRef{
			ID:          id,
			Name:        def.name,
			StationID:   stationID,
			Coordinates: coords,
		})
	}

	if err := accesspointrepo.NewGormAccessPointRepository(db).Seed(ctx, refs); err != nil {
		return fmt.Errorf("failed to seed access points: %w", err)
	}

	return nil
}
