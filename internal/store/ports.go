// Package store owns record persistence: the repository interfaces the
// rest of the service programs against, plus the SQLite and in-memory
// implementations, identifier generation and demo-data seeding.
package store

import (
	"context"
	"errors"

	"navexa/internal/core"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

type (
	// TripStore is the repository for trips. ListTrips returns trips
	// newest-first; the stable order makes the dashboard's best-vehicle
	// tie-break deterministic for a given snapshot.
	TripStore interface {
		ListTrips(ctx context.Context) ([]core.Trip, error)
		GetTrip(ctx context.Context, id string) (core.Trip, error)
		// UpsertTrip inserts or replaces by id, assigning a fresh id when
		// the trip has none, and returns the stored trip.
		UpsertTrip(ctx context.Context, t core.Trip) (core.Trip, error)
		DeleteTrip(ctx context.Context, id string) error

		// ListUnsyncedTrips returns up to limit trips not yet exported to
		// the external ledger, oldest first.
		ListUnsyncedTrips(ctx context.Context, limit int) ([]core.Trip, error)
		MarkTripSynced(ctx context.Context, id string) error
	}

	// VehicleStore is the repository for vehicles.
	VehicleStore interface {
		ListVehicles(ctx context.Context) ([]core.Vehicle, error)
		GetVehicle(ctx context.Context, id string) (core.Vehicle, error)
		UpsertVehicle(ctx context.Context, v core.Vehicle) (core.Vehicle, error)
		DeleteVehicle(ctx context.Context, id string) error
	}

	// Store is the full repository surface the application wires up.
	Store interface {
		TripStore
		VehicleStore
		Close() error
	}
)
